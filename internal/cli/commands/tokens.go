package commands

import (
	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/spf13/cobra"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var expr string

	cmd := &cobra.Command{
		Use:     "tokens [file...]",
		Aliases: []string{"lex"},
		Short:   "Print the token stream of SQL input",
		Long: `Lex SQL input and print every token with its kind and position.

When the lexer fails, the tokens produced before the failure are printed
followed by the diagnostic.`,
		Example: `  minisql tokens -e "select 'it''s' from t"
  minisql tokens query.sql -o json`,
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
				tokens, lexErr := parser.Lex(src.Text)
				name := ""
				if len(sources) > 1 {
					name = src.Name
				}
				if err := r.Tokens(name, tokens); err != nil {
					return err
				}
				if lexErr != nil {
					r.Diagnostic(src.Name, lexErr)
					failed++
				}
				cmdCtx.Logger.Debug("lexed input", "source", src.Name, "tokens", len(tokens))
			}

			if failed > 0 {
				return errInputsFailed(failed, len(sources))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "SQL text to lex instead of files")
	return cmd
}
