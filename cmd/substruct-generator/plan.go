package main

import (
	"github.com/spf13/cobra"

	"substruct-generator/internal/export"
)

// Plan exports resolved patch types.
type Plan struct {
	root *Root

	Output string
}

// NewPlan returns the plan command.
func NewPlan(root *Root) *cobra.Command {
	p := &Plan{root: root}

	cmd := &cobra.Command{
		Use:   "plan FILE",
		Short: "Export the resolved patch types and their behavior table as YAML",
		Args:  cobra.ExactArgs(1),
		RunE:  p.Run,
	}
	cmd.Flags().StringVarP(&p.Output, "output", "o", "", "output file, stdout when empty")

	return cmd
}

// Run writes the export document to Output, or stdout when it is empty.
func (p *Plan) Run(cmd *cobra.Command, args []string) error {
	l, err := p.root.load(cmd.Context(), args[0], cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if err := l.report(cmd.ErrOrStderr(), args[0]); err != nil {
		return err
	}

	doc := export.FromSchemas(l.schemas,
		export.WithSession(l.session.ID().String()),
		export.WithNames(l.session.Registry()))

	if p.Output == "" {
		return export.Write(cmd.OutOrStdout(), doc)
	}

	if err := export.WriteFile(p.Output, doc); err != nil {
		return err
	}

	p.root.log.Infow("plan written", "file", p.Output, "patches", len(doc.Patches))

	return nil
}
