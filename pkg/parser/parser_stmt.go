package parser

import "github.com/leapstack-labs/minisql/pkg/token"

// Statement parsing: SELECT, INSERT and CREATE TABLE.
//
// Grammar:
//
//	select        → SELECT expr_list(FROM | ";") [FROM identifier]
//	insert        → INSERT INTO identifier VALUES "(" expr_list(")") ")"
//	create_table  → CREATE TABLE identifier "(" column_list(")") ")"
//
// expr_list and column_list stop in front of their end tokens and never
// consume them. Empty lists are rejected.

// parseSelect parses a SELECT statement.
func (p *parser) parseSelect(initial int) (Statement, int, bool, error) {
	if !p.expectToken(initial, selectTok) {
		return nil, initial, false, nil
	}
	cursor := initial + 1

	items, cursor, err := p.parseExpressions(cursor, []Token{fromTok, semicolonTok})
	if err != nil {
		return nil, initial, true, err
	}
	stmt := &SelectStmt{Pos: p.tokens[initial].Pos, Items: items}

	if p.expectToken(cursor, fromTok) {
		cursor++
		from, next, ok := p.parseToken(cursor, token.Identifier)
		if !ok {
			return nil, initial, true, p.expected(cursor, "table name after FROM")
		}
		stmt.From = &from
		cursor = next
	}

	return stmt, cursor, true, nil
}

// parseInsert parses an INSERT INTO ... VALUES (...) statement.
func (p *parser) parseInsert(initial int) (Statement, int, bool, error) {
	if !p.expectToken(initial, insertTok) {
		return nil, initial, false, nil
	}
	cursor := initial + 1

	if !p.expectToken(cursor, intoTok) {
		return nil, initial, true, p.expected(cursor, "INTO")
	}
	cursor++

	table, cursor, ok := p.parseToken(cursor, token.Identifier)
	if !ok {
		return nil, initial, true, p.expected(cursor, "table name")
	}

	if !p.expectToken(cursor, valuesTok) {
		return nil, initial, true, p.expected(cursor, "VALUES")
	}
	cursor++

	if !p.expectToken(cursor, lparenTok) {
		return nil, initial, true, p.expected(cursor, "(")
	}
	cursor++

	values, cursor, err := p.parseExpressions(cursor, []Token{rparenTok})
	if err != nil {
		return nil, initial, true, err
	}

	if !p.expectToken(cursor, rparenTok) {
		return nil, initial, true, p.expected(cursor, ")")
	}
	cursor++

	return &InsertStmt{
		Pos:    p.tokens[initial].Pos,
		Table:  table,
		Values: values,
	}, cursor, true, nil
}

// parseCreateTable parses a CREATE TABLE statement. CREATE alone commits:
// there is no other CREATE form to fall back to.
func (p *parser) parseCreateTable(initial int) (Statement, int, bool, error) {
	if !p.expectToken(initial, createTok) {
		return nil, initial, false, nil
	}
	cursor := initial + 1

	if !p.expectToken(cursor, tableTok) {
		return nil, initial, true, p.expected(cursor, "TABLE")
	}
	cursor++

	name, cursor, ok := p.parseToken(cursor, token.Identifier)
	if !ok {
		return nil, initial, true, p.expected(cursor, "table name")
	}

	if !p.expectToken(cursor, lparenTok) {
		return nil, initial, true, p.expected(cursor, "(")
	}
	cursor++

	cols, cursor, err := p.parseColumnDefs(cursor, rparenTok)
	if err != nil {
		return nil, initial, true, err
	}

	if !p.expectToken(cursor, rparenTok) {
		return nil, initial, true, p.expected(cursor, ")")
	}
	cursor++

	return &CreateTableStmt{
		Pos:     p.tokens[initial].Pos,
		Name:    name,
		Columns: cols,
	}, cursor, true, nil
}

// ---------- Lists ----------

// parseExpressions parses a comma-separated expression list that ends in
// front of any token in end.
func (p *parser) parseExpressions(initial int, end []Token) ([]Expr, int, error) {
	cursor := initial
	var exprs []Expr

	for cursor < len(p.tokens) && !p.expectAny(cursor, end) {
		if len(exprs) > 0 {
			if !p.expectToken(cursor, commaTok) {
				return nil, initial, p.expected(cursor, "comma")
			}
			cursor++
		}

		expr, next, ok := p.parseExpression(cursor)
		if !ok {
			return nil, initial, p.expected(cursor, "expression")
		}
		exprs = append(exprs, expr)
		cursor = next
	}

	if len(exprs) == 0 {
		return nil, initial, p.expected(cursor, "expression")
	}
	return exprs, cursor, nil
}

// literalKinds are the token kinds that form a literal expression.
var literalKinds = [...]token.Kind{token.Identifier, token.Numeric, token.String}

// parseExpression parses a single literal.
func (p *parser) parseExpression(initial int) (Expr, int, bool) {
	for _, kind := range literalKinds {
		if tok, next, ok := p.parseToken(initial, kind); ok {
			return &Literal{Token: tok}, next, true
		}
	}
	return nil, initial, false
}

// parseColumnDefs parses "name type" pairs separated by commas, ending in
// front of end.
func (p *parser) parseColumnDefs(initial int, end Token) ([]*ColumnDef, int, error) {
	cursor := initial
	var cols []*ColumnDef

	for cursor < len(p.tokens) && !p.expectToken(cursor, end) {
		if len(cols) > 0 {
			if !p.expectToken(cursor, commaTok) {
				return nil, initial, p.expected(cursor, "comma")
			}
			cursor++
		}

		name, next, ok := p.parseToken(cursor, token.Identifier)
		if !ok {
			return nil, initial, p.expected(cursor, "column name")
		}
		cursor = next

		typ, next, ok := p.parseToken(cursor, token.Keyword)
		if !ok {
			return nil, initial, p.expected(cursor, "column type")
		}
		cursor = next

		cols = append(cols, &ColumnDef{Name: name, Type: typ})
	}

	if len(cols) == 0 {
		return nil, initial, p.expected(cursor, "column name")
	}
	return cols, cursor, nil
}
