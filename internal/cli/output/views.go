package output

import (
	"github.com/leapstack-labs/minisql/pkg/format"
	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/leapstack-labs/minisql/pkg/token"
)

// TokenView is the serialized form of a token.
type TokenView struct {
	Kind   string `json:"kind" yaml:"kind"`
	Value  string `json:"value" yaml:"value"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Offset int    `json:"offset" yaml:"offset"`
}

// ExprView is the serialized form of an expression.
type ExprView struct {
	Kind  string    `json:"kind" yaml:"kind"`
	Token TokenView `json:"token" yaml:"token"`
}

// ColumnView is the serialized form of a column definition.
type ColumnView struct {
	Name TokenView `json:"name" yaml:"name"`
	Type TokenView `json:"type" yaml:"type"`
}

// StatementView is the serialized form of a statement. Only the fields of
// the statement's kind are set.
type StatementView struct {
	Kind     string       `json:"kind" yaml:"kind"`
	Position string       `json:"position" yaml:"position"`
	SQL      string       `json:"sql" yaml:"sql"`
	Items    []ExprView   `json:"items,omitempty" yaml:"items,omitempty"`
	From     *TokenView   `json:"from,omitempty" yaml:"from,omitempty"`
	Table    *TokenView   `json:"table,omitempty" yaml:"table,omitempty"`
	Values   []ExprView   `json:"values,omitempty" yaml:"values,omitempty"`
	Name     *TokenView   `json:"name,omitempty" yaml:"name,omitempty"`
	Columns  []ColumnView `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// ProgramView is the serialized form of a program.
type ProgramView struct {
	Source     string          `json:"source,omitempty" yaml:"source,omitempty"`
	Statements []StatementView `json:"statements" yaml:"statements"`
}

// DiagnosticView is the serialized form of a lex or parse failure.
type DiagnosticView struct {
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	Stage   string `json:"stage" yaml:"stage"` // "lex", "parse" or "io"
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// NewTokenView converts a token.
func NewTokenView(t token.Token) TokenView {
	return TokenView{
		Kind:   t.Kind.String(),
		Value:  t.Value,
		Line:   t.Pos.Line,
		Column: t.Pos.Column,
		Offset: t.Pos.Offset,
	}
}

func newTokenViewPtr(t token.Token) *TokenView {
	v := NewTokenView(t)
	return &v
}

// NewExprView converts an expression.
func NewExprView(e parser.Expr) ExprView {
	view := ExprView{Kind: e.Kind().String()}
	if lit, ok := e.(*parser.Literal); ok {
		view.Token = NewTokenView(lit.Token)
	}
	return view
}

func newExprViews(exprs []parser.Expr) []ExprView {
	views := make([]ExprView, 0, len(exprs))
	for _, e := range exprs {
		views = append(views, NewExprView(e))
	}
	return views
}

// NewStatementView converts a statement.
func NewStatementView(stmt parser.Statement) StatementView {
	view := StatementView{
		Kind: stmt.Kind().String(),
		SQL:  format.Statement(stmt),
	}

	switch s := stmt.(type) {
	case *parser.SelectStmt:
		view.Position = s.Pos.String()
		view.Items = newExprViews(s.Items)
		if s.From != nil {
			view.From = newTokenViewPtr(*s.From)
		}
	case *parser.InsertStmt:
		view.Position = s.Pos.String()
		view.Table = newTokenViewPtr(s.Table)
		view.Values = newExprViews(s.Values)
	case *parser.CreateTableStmt:
		view.Position = s.Pos.String()
		view.Name = newTokenViewPtr(s.Name)
		view.Columns = make([]ColumnView, 0, len(s.Columns))
		for _, c := range s.Columns {
			view.Columns = append(view.Columns, ColumnView{
				Name: NewTokenView(c.Name),
				Type: NewTokenView(c.Type),
			})
		}
	}
	return view
}

// NewProgramView converts a program. Statements is never nil so an empty
// program serializes as an empty list.
func NewProgramView(source string, prog *parser.Program) ProgramView {
	view := ProgramView{Source: source, Statements: make([]StatementView, 0, len(prog.Statements))}
	for _, stmt := range prog.Statements {
		view.Statements = append(view.Statements, NewStatementView(stmt))
	}
	return view
}

// NewDiagnosticView converts an error returned by the lexer or parser.
// Any other error is reported with stage "io" and no position.
func NewDiagnosticView(source string, err error) DiagnosticView {
	d := Describe(err)
	return DiagnosticView{
		Source:  source,
		Stage:   d.Stage,
		Line:    d.Pos.Line,
		Column:  d.Pos.Column,
		Message: d.Message,
	}
}
