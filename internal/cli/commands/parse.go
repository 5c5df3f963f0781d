package commands

import (
	"github.com/leapstack-labs/minisql/pkg/format"
	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/spf13/cobra"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Expr   string
	Format bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse SQL and print its syntax tree",
		Long: `Parse one or more SQL inputs and print the resulting statements.

Input is read from the given files, from stdin when no file (or "-") is
given, or from the --expr flag. Lexer and parser failures are reported as
file:line:column diagnostics and make the command exit non-zero.

Output Modes:
  - text:     Styled statement tree (default on a terminal)
  - markdown: Table of statements (default when piped)
  - json:     Statement tree as JSON
  - yaml:     Statement tree as YAML`,
		Example: `  # Parse a file
  minisql parse schema.sql

  # Parse inline SQL as JSON
  minisql parse -e "SELECT id FROM users" -o json

  # Parse from stdin and print canonical SQL
  cat query.sql | minisql parse --format`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Expr, "expr", "e", "", "SQL text to parse instead of files")
	cmd.Flags().BoolVar(&opts.Format, "format", false, "Print canonical SQL instead of the syntax tree")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	sources, err := readSources(cmd, args, opts.Expr)
	if err != nil {
		return err
	}

	failed := 0
	for _, src := range sources {
		prog, err := parser.Parse(src.Text)
		if err != nil {
			cmdCtx.Logger.Debug("parse failed", "source", src.Name, "error", err)
			r.Diagnostic(src.Name, err)
			failed++
			continue
		}
		cmdCtx.Logger.Debug("parsed input", "source", src.Name, "statements", len(prog.Statements))

		if opts.Format {
			r.Printf("%s", format.Format(prog))
			continue
		}

		name := ""
		if len(sources) > 1 {
			name = src.Name
		}
		if err := r.Program(name, prog); err != nil {
			return err
		}
	}

	if failed > 0 {
		return errInputsFailed(failed, len(sources))
	}
	return nil
}
