package main

import (
	"context"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"substruct-generator/internal/descriptor"
	"substruct-generator/internal/diagnostic"
	"substruct-generator/internal/logging"
	"substruct-generator/internal/naming"
	"substruct-generator/internal/plan"
	"substruct-generator/internal/schema"
)

// Root holds the flags shared by every command.
type Root struct {
	LogLevel  string
	LogFormat string
	Suffix    string
	Debug     bool

	log *zap.SugaredLogger
}

// NewRoot builds the substruct-generator command tree.
func NewRoot() *cobra.Command {
	r := &Root{}

	cmd := &cobra.Command{
		Use:          "substruct-generator",
		Short:        "Resolve record descriptions into patch types",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.Init(r.LogLevel, logging.ParseFormat(r.LogFormat))
			r.log = logging.For(logging.ComponentCLI)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}
	cmd.CompletionOptions.HiddenDefaultCmd = true

	f := cmd.PersistentFlags()
	f.StringVar(&r.LogLevel, "log-level", logging.Env(logging.EnvLevel, "info"),
		"log level (debug, info, warn, error), env "+logging.EnvLevel)
	f.StringVar(&r.LogFormat, "log-format", logging.Env(logging.EnvFormat, string(logging.FormatConsole)),
		"log format (console, json), env "+logging.EnvFormat)
	f.StringVar(&r.Suffix, "suffix", naming.DefaultSuffix, "suffix of generated patch type names")
	f.BoolVar(&r.Debug, "debug", false, "dump resolved schemas to stderr")

	cmd.AddCommand(NewCheck(r), NewPlan(r), NewApply(r))

	return cmd
}

// loaded is a descriptor file resolved in a fresh session.
type loaded struct {
	file    *descriptor.File
	session *schema.Session
	schemas []*plan.Schema
	diags   *diagnostic.Diagnostics
}

// load reads, lints and resolves a descriptor file. Structural problems are
// reported through diagnostics; only I/O and parse failures are returned.
func (r *Root) load(ctx context.Context, path string, debug io.Writer) (*loaded, error) {
	f, err := descriptor.LoadFile(path)
	if err != nil {
		return nil, err
	}

	l := &loaded{file: f, diags: descriptor.Lint(f)}
	if l.diags.HasErrors() {
		return l, nil
	}

	l.session = schema.NewSession(
		schema.WithSuffix(r.Suffix),
		schema.WithLogger(logging.For(logging.ComponentSession)),
	)

	l.schemas, err = l.session.Build(ctx, f.Records)
	l.diags.AddErr(err)

	r.log.Debugw("descriptor loaded",
		"file", path,
		"session", l.session.ID(),
		"records", len(f.Records),
		"resolved", len(l.schemas))

	if r.Debug {
		spew.Fdump(debug, l.schemas)
	}

	return l, nil
}

// report prints diagnostics and fails when any of them is an error.
func (l *loaded) report(w io.Writer, path string) error {
	for _, d := range l.diags.Warnings {
		fmt.Fprintf(w, "warning: %s\n", d)
	}

	for _, d := range l.diags.Errors {
		fmt.Fprintf(w, "error: %s\n", d)
	}

	if l.diags.HasErrors() {
		return fmt.Errorf("%s: %d error(s)", path, len(l.diags.Errors))
	}

	return nil
}
