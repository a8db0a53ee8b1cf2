package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Check validates a descriptor file.
type Check struct {
	root *Root
}

// NewCheck returns the check command.
func NewCheck(root *Root) *cobra.Command {
	c := &Check{root: root}

	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a descriptor file and list the resolved patch types",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Run,
	}
}

// Run lints and resolves the file, then prints diagnostics or one
// "<fingerprint> <schema>" line per patch type.
func (c *Check) Run(cmd *cobra.Command, args []string) error {
	l, err := c.root.load(cmd.Context(), args[0], cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := l.report(out, args[0]); err != nil {
		return err
	}

	for _, s := range l.schemas {
		fmt.Fprintf(out, "%s %s\n", s.Fingerprint(), s)
	}

	c.root.log.Infow("descriptor checked", "file", args[0], "patches", len(l.schemas))

	return nil
}
