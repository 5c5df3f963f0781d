package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/minisql/pkg/format"
	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/leapstack-labs/minisql/pkg/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ---------- Programs ----------

// Program renders a parsed program.
func (r *Renderer) Program(source string, prog *parser.Program) error {
	switch r.EffectiveMode() {
	case ModeJSON, ModeYAML:
		return r.Structured(NewProgramView(source, prog))
	case ModeMarkdown:
		return r.programMarkdown(source, prog)
	default:
		r.programText(source, prog)
		return nil
	}
}

func (r *Renderer) programText(source string, prog *parser.Program) {
	styles := r.styles
	if source != "" {
		r.Println(styles.Header1.Render(source))
	}
	if len(prog.Statements) == 0 {
		r.Muted("(no statements)")
		return
	}

	titleCaser := cases.Title(language.English)
	for i, stmt := range prog.Statements {
		view := NewStatementView(stmt)
		r.Printf("%s %s  %s\n",
			styles.Muted.Render(strconv.Itoa(i+1)+"."),
			styles.Bold.Render(titleCaser.String(view.Kind)),
			styles.Position.Render(view.Position),
		)

		switch s := stmt.(type) {
		case *parser.SelectStmt:
			r.field("items", r.styledExprs(s.Items))
			if s.From != nil {
				r.field("from", r.styledToken(*s.From))
			}
		case *parser.InsertStmt:
			r.field("table", r.styledToken(s.Table))
			r.field("values", r.styledExprs(s.Values))
		case *parser.CreateTableStmt:
			r.field("name", r.styledToken(s.Name))
			for _, c := range s.Columns {
				r.field("column", r.styledToken(c.Name)+" "+r.styledToken(c.Type))
			}
		}
	}
}

func (r *Renderer) field(label, value string) {
	r.Printf("   %s %s\n", r.styles.Muted.Render(fmt.Sprintf("%-7s", label)), value)
}

// styledToken renders a token as it would appear in canonical SQL.
func (r *Renderer) styledToken(t token.Token) string {
	switch t.Kind {
	case token.Keyword:
		return r.styles.Keyword.Render(strings.ToUpper(t.Value))
	case token.Identifier:
		return r.styles.Identifier.Render(format.Ident(t.Value))
	case token.String:
		return r.styles.String.Render(format.Quote(t.Value))
	case token.Numeric:
		return r.styles.Numeric.Render(t.Value)
	default:
		return r.styles.Symbol.Render(t.Value)
	}
}

func (r *Renderer) styledExprs(exprs []parser.Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		if lit, ok := e.(*parser.Literal); ok {
			parts = append(parts, r.styledToken(lit.Token))
		}
	}
	return strings.Join(parts, ", ")
}

func (r *Renderer) programMarkdown(source string, prog *parser.Program) error {
	if source != "" {
		r.Header(source)
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Kind", "Position", "SQL"})
	for i, stmt := range prog.Statements {
		view := NewStatementView(stmt)
		t.AppendRow(table.Row{i + 1, view.Kind, view.Position, "`" + view.SQL + "`"})
	}
	r.Println(t.RenderMarkdown())
	return nil
}

// ---------- Tokens ----------

type tokensView struct {
	Source string      `json:"source,omitempty" yaml:"source,omitempty"`
	Tokens []TokenView `json:"tokens" yaml:"tokens"`
}

// Tokens renders a token stream.
func (r *Renderer) Tokens(source string, tokens []token.Token) error {
	if r.EffectiveMode().Structured() {
		view := tokensView{Source: source, Tokens: make([]TokenView, 0, len(tokens))}
		for _, t := range tokens {
			view.Tokens = append(view.Tokens, NewTokenView(t))
		}
		return r.Structured(view)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Kind", "Value", "Position"})
	for i, tok := range tokens {
		t.AppendRow(table.Row{i + 1, tok.Kind.String(), strconv.Quote(tok.Value), tok.Pos.String()})
	}

	if r.EffectiveMode() == ModeMarkdown {
		if source != "" {
			r.Header(source)
		}
		r.Println(t.RenderMarkdown())
		return nil
	}

	if source != "" {
		r.Println(r.styles.Header1.Render(source))
	}
	t.SetStyle(table.StyleLight)
	r.Println(t.Render())
	r.Muted(fmt.Sprintf("(%d tokens)", len(tokens)))
	return nil
}

// ---------- Diagnostics ----------

// Diagnostic reports a lex, parse or read failure for source. Structured
// modes write a DiagnosticView to the result writer so consumers see one
// document per input; other modes write a styled line to the error writer.
func (r *Renderer) Diagnostic(source string, err error) {
	if r.EffectiveMode().Structured() {
		_ = r.Structured(struct {
			Error DiagnosticView `json:"error" yaml:"error"`
		}{NewDiagnosticView(source, err)})
		return
	}
	line := Describe(err).String(source)
	_, _ = fmt.Fprintln(r.errW, r.styles.Error.Render(line))
}
