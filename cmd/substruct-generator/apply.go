package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"substruct-generator/internal/patch"
	"substruct-generator/internal/record"
)

// Apply applies a patch document to a record.
type Apply struct {
	root *Root

	Record string
	Patch  string
	Target string
}

// NewApply returns the apply command.
func NewApply(root *Root) *cobra.Command {
	a := &Apply{root: root}

	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply a patch document to a record and print the result",
		Args:  cobra.ExactArgs(1),
		RunE:  a.Run,
	}

	f := cmd.Flags()
	f.StringVar(&a.Record, "record", "", "record the patch applies to")
	f.StringVar(&a.Patch, "patch", "", "YAML patch document")
	f.StringVar(&a.Target, "target", "", "YAML record to patch")

	_ = cmd.MarkFlagRequired("record")
	_ = cmd.MarkFlagRequired("patch")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

type applyResult struct {
	WouldChange bool             `yaml:"would_change"`
	Patch       patch.Projection `yaml:"patch"`
	Result      record.Record    `yaml:"result"`
}

// Run decodes the patch against the target record and prints whether it
// changes the record, its projection and the patched record.
func (a *Apply) Run(cmd *cobra.Command, args []string) error {
	l, err := a.root.load(cmd.Context(), args[0], cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if err := l.report(cmd.ErrOrStderr(), args[0]); err != nil {
		return err
	}

	s, ok := l.session.Schema(a.Record)
	if !ok {
		return fmt.Errorf("record %q is not described in %s", a.Record, args[0])
	}

	var doc map[string]any
	if err := readYAML(a.Patch, &doc); err != nil {
		return err
	}

	target := record.Record{}
	if err := readYAML(a.Target, &target); err != nil {
		return err
	}

	p, err := patch.Decode(s, doc, target)
	if err != nil {
		return fmt.Errorf("decode %s: %w", a.Patch, err)
	}

	changed, err := p.WouldChange(target)
	if err != nil {
		return err
	}

	out, err := p.Apply(target)
	if err != nil {
		return err
	}

	a.root.log.Infow("patch applied", "record", a.Record, "patch", s.Name, "fields", p.FieldCount(), "changed", changed)

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)

	if err := enc.Encode(applyResult{WouldChange: changed, Patch: p.Project(), Result: out}); err != nil {
		return err
	}

	return enc.Close()
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}
