package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/minisql/pkg/format"
	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/spf13/cobra"
)

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	var (
		expr  string
		write bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Rewrite SQL in canonical form",
		Long: `Print SQL input in canonical form: upper-case keywords, one statement
per line, each terminated by a semicolon, identifiers quoted only when
needed.

With --write the files are rewritten in place instead. Files that fail to
parse are left untouched.`,
		Example: `  minisql fmt query.sql
  minisql fmt --write schema/*.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer

			sources, err := readSources(cmd, args, expr)
			if err != nil {
				return err
			}

			failed := 0
			for _, src := range sources {
				prog, err := parser.Parse(src.Text)
				if err != nil {
					r.Diagnostic(src.Name, err)
					failed++
					continue
				}
				formatted := format.Format(prog)

				if !write || src.Path == "" {
					r.Printf("%s", formatted)
					continue
				}
				if formatted == src.Text {
					cmdCtx.Logger.Debug("already formatted", "file", src.Path)
					continue
				}
				if err := writeFilePreservingMode(src.Path, formatted); err != nil {
					return err
				}
				cmdCtx.Logger.Info("formatted file", "file", src.Path)
				r.Println(src.Path)
			}

			if failed > 0 {
				return errInputsFailed(failed, len(sources))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "SQL text to format instead of files")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite files in place")
	return cmd
}

func writeFilePreservingMode(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
