package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/minisql/internal/cli/output"
	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/leapstack-labs/minisql/pkg/token"
	"github.com/spf13/cobra"
)

const continuationPrompt = "    ...> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	var historyFile string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse SQL interactively",
		Long: `Start an interactive shell that parses each statement as it is entered.

Statements may span several lines and end with a semicolon. Lines starting
with a dot are shell commands; type .help to list them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			replCfg := cmdCtx.Cfg.GetREPLConfig()
			if cmd.Flags().Changed("history") {
				replCfg.HistoryFile = historyFile
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          replCfg.Prompt,
				HistoryFile:     replCfg.HistoryFile,
				AutoComplete:    newKeywordCompleter(),
				InterruptPrompt: "^C",
				EOFPrompt:       ".quit",
				Stdin:           io.NopCloser(cmd.InOrStdin()),
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize REPL: %w", err)
			}
			defer func() { _ = rl.Close() }()

			session := newREPLSession(cmdCtx.Renderer, cmdCtx.Cfg.NoColor)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "minisql REPL")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					session.reset()
					rl.SetPrompt(replCfg.Prompt)
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}

				if quit := session.feed(line); quit {
					return nil
				}
				if session.pending() {
					rl.SetPrompt(continuationPrompt)
				} else {
					rl.SetPrompt(replCfg.Prompt)
				}
			}
		},
	}

	cmd.Flags().StringVar(&historyFile, "history", "", "History file (overrides repl.history_file)")
	return cmd
}

// replSession holds the state of one interactive session apart from the
// line editor, so it can be driven line by line. Output goes through the
// renderer's writers.
type replSession struct {
	renderer *output.Renderer
	noColor  bool
	buf      strings.Builder
}

func newREPLSession(r *output.Renderer, noColor bool) *replSession {
	return &replSession{renderer: r, noColor: noColor}
}

func (s *replSession) errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.renderer.ErrWriter(), format, a...)
}

// pending reports whether an unterminated statement is buffered.
func (s *replSession) pending() bool {
	return s.buf.Len() > 0
}

func (s *replSession) reset() {
	s.buf.Reset()
}

// feed handles one input line. It returns true when the session should end.
func (s *replSession) feed(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	if !s.pending() && strings.HasPrefix(trimmed, ".") {
		return s.dotCommand(trimmed)
	}

	// Accumulate multi-line SQL until semicolon
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	if !strings.HasSuffix(trimmed, ";") {
		return false
	}

	text := s.buf.String()
	s.buf.Reset()

	prog, err := parser.Parse(text)
	if err != nil {
		s.renderer.Diagnostic("", err)
		return false
	}
	if err := s.renderer.Program("", prog); err != nil {
		s.errorf("Error: %v\n", err)
	}
	return false
}

func (s *replSession) dotCommand(line string) bool {
	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.renderer)

	case ".tokens":
		if rest == "" {
			s.errorf("Usage: .tokens <sql>\n")
			return false
		}
		tokens, err := parser.Lex(rest)
		if rerr := s.renderer.Tokens("", tokens); rerr != nil {
			s.errorf("Error: %v\n", rerr)
		}
		if err != nil {
			s.renderer.Diagnostic("", err)
		}

	case ".mode":
		if rest == "" {
			s.renderer.Printf("%s\n", s.renderer.EffectiveMode())
			return false
		}
		mode, err := output.ParseMode(rest)
		if err != nil {
			s.errorf("Error: %v\n", err)
			return false
		}
		s.renderer = output.NewRenderer(s.renderer.Writer(), s.renderer.ErrWriter(), mode, output.WithNoColor(s.noColor))

	default:
		s.errorf("Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(r *output.Renderer) {
	heading := r.Styles().Header2
	r.Println(heading.Render("Commands:"))
	r.Println(`  .help            Show this help message
  .tokens <sql>    Print the tokens of a line of SQL
  .mode [mode]     Show or set the output mode (text, json, yaml, markdown)
  .quit / .exit    Exit the REPL`)
	r.Println()
	r.Println(heading.Render("Tips:"))
	r.Println(`  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for keywords and commands`)
}

// newKeywordCompleter completes reserved words and dot-commands.
func newKeywordCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, kw := range token.Keywords() {
		items = append(items, readline.PcItem(strings.ToUpper(kw)))
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".tokens"),
		readline.PcItem(".mode",
			readline.PcItem("text"),
			readline.PcItem("json"),
			readline.PcItem("yaml"),
			readline.PcItem("markdown"),
		),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
