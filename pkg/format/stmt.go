package format

import (
	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/leapstack-labs/minisql/pkg/token"
)

func (p *Printer) formatStatement(stmt parser.Statement) {
	switch s := stmt.(type) {
	case *parser.SelectStmt:
		p.formatSelect(s)
	case *parser.InsertStmt:
		p.formatInsert(s)
	case *parser.CreateTableStmt:
		p.formatCreateTable(s)
	}
}

// SELECT a, b FROM t
func (p *Printer) formatSelect(s *parser.SelectStmt) {
	p.kw(token.Select)
	p.space()
	p.formatExprs(s.Items)
	if s.From != nil {
		p.space()
		p.kw(token.From)
		p.space()
		p.token(*s.From)
	}
}

// INSERT INTO t VALUES (1, 'x')
func (p *Printer) formatInsert(s *parser.InsertStmt) {
	p.kw(token.Insert, token.Into)
	p.space()
	p.token(s.Table)
	p.space()
	p.kw(token.Values)
	p.write(" (")
	p.formatExprs(s.Values)
	p.write(")")
}

// CREATE TABLE t (a INT, b TEXT)
func (p *Printer) formatCreateTable(s *parser.CreateTableStmt) {
	p.kw(token.Create, token.Table)
	p.space()
	p.token(s.Name)
	p.write(" (")
	p.formatList(len(s.Columns), func(i int) {
		col := s.Columns[i]
		p.token(col.Name)
		p.space()
		p.token(col.Type)
	})
	p.write(")")
}

func (p *Printer) formatExprs(exprs []parser.Expr) {
	p.formatList(len(exprs), func(i int) {
		p.formatExpr(exprs[i])
	})
}

func (p *Printer) formatExpr(e parser.Expr) {
	if lit, ok := e.(*parser.Literal); ok {
		p.token(lit.Token)
	}
}
