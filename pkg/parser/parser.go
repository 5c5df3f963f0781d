// Package parser lexes and parses the minisql dialect.
//
// # Usage
//
//	prog, err := parser.Parse("SELECT id, name FROM users;")
//	if err != nil {
//	    // *parser.LexError or *parser.ParseError
//	}
//
// # Grammar Overview
//
// The parser implements a recursive descent parser over a token slice:
//
//	program       → (statement ";"+)*
//	statement     → select | insert | create_table
//	select        → SELECT expr_list [FROM identifier]
//	insert        → INSERT INTO identifier VALUES "(" expr_list ")"
//	create_table  → CREATE TABLE identifier "(" column_def ("," column_def)* ")"
//	column_def    → identifier keyword
//	expr_list     → expression ("," expression)*
//	expression    → identifier | numeric | string
//
// Sub-parsers take the token slice and a starting index. They either return
// the node and the index after it, or report no match and leave the index
// where it was. A statement parser that has matched its leading keyword
// never reports "no match" afterwards; any later mismatch is a *ParseError.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/minisql/pkg/token"
)

// parser holds the token slice being parsed. It has no other state: every
// method takes and returns an explicit index.
type parser struct {
	tokens    []Token
	synthetic int // index of the appended semicolon, or -1
}

// Parse lexes and parses source. A lexer failure is returned as a *LexError;
// a grammar failure as a *ParseError. On error the program is nil.
func Parse(source string) (*Program, error) {
	tokens, end, err := lexAll(NewLexer(source))
	if err != nil {
		return nil, err
	}
	return newParser(tokens, end).parseProgram()
}

// newParser terminates the token stream with a semicolon unless it already
// ends in one, so every statement has a trailing delimiter.
func newParser(tokens []Token, end Position) *parser {
	p := &parser{tokens: tokens, synthetic: -1}
	if len(tokens) > 0 && !tokens[len(tokens)-1].Equals(semicolonTok) {
		semi := semicolonTok
		semi.Pos = end
		p.synthetic = len(tokens)
		p.tokens = append(p.tokens, semi)
	}
	return p
}

// ---------- Token Helpers ----------

// expectToken reports whether the token at cursor equals want.
func (p *parser) expectToken(cursor int, want Token) bool {
	if cursor >= len(p.tokens) {
		return false
	}
	return p.tokens[cursor].Equals(want)
}

// expectAny reports whether the token at cursor equals any of want.
func (p *parser) expectAny(cursor int, want []Token) bool {
	for _, w := range want {
		if p.expectToken(cursor, w) {
			return true
		}
	}
	return false
}

// parseToken consumes one token of the given kind.
func (p *parser) parseToken(initial int, kind token.Kind) (Token, int, bool) {
	if initial >= len(p.tokens) {
		return Token{}, initial, false
	}
	if tok := p.tokens[initial]; tok.Kind == kind {
		return tok, initial + 1, true
	}
	return Token{}, initial, false
}

// at returns the token at cursor, or the last token when cursor is past the end.
func (p *parser) at(cursor int) Token {
	if cursor < len(p.tokens) {
		return p.tokens[cursor]
	}
	return p.tokens[len(p.tokens)-1]
}

// describe names the token at cursor for diagnostics.
func (p *parser) describe(cursor int) string {
	if cursor >= len(p.tokens) || cursor == p.synthetic {
		return "end of input"
	}
	return p.tokens[cursor].String()
}

// errorf builds a ParseError positioned at the token under cursor.
func (p *parser) errorf(cursor int, format string, args ...any) *ParseError {
	return &ParseError{
		Pos:     p.at(cursor).Pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// expected reports that what was required at cursor is missing.
func (p *parser) expected(cursor int, what string) *ParseError {
	return p.errorf(cursor, ErrExpected, what, p.describe(cursor))
}

// ---------- Program ----------

// parseProgram parses statements until the tokens are exhausted. Runs of
// semicolons between statements count as one separator.
func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{}
	cursor := 0

	for cursor < len(p.tokens) {
		stmt, next, err := p.parseStatement(cursor)
		if err != nil {
			return nil, err
		}
		cursor = next
		prog.Statements = append(prog.Statements, stmt)

		separated := false
		for p.expectToken(cursor, semicolonTok) {
			cursor++
			separated = true
		}
		if !separated {
			return nil, p.errorf(cursor, ErrMissingSemicolon, p.describe(cursor))
		}
	}

	return prog, nil
}

// stmtParser parses one statement form. matched is false only when the
// leading keyword is absent; then the cursor is returned unchanged.
type stmtParser func(p *parser, initial int) (stmt Statement, next int, matched bool, err error)

// statementParsers are tried in order.
var statementParsers = [...]stmtParser{
	(*parser).parseSelect,
	(*parser).parseInsert,
	(*parser).parseCreateTable,
}

// parseStatement dispatches on the leading keyword.
func (p *parser) parseStatement(initial int) (Statement, int, error) {
	for _, parse := range statementParsers {
		stmt, next, matched, err := parse(p, initial)
		if err != nil {
			return nil, initial, err
		}
		if matched {
			return stmt, next, nil
		}
	}
	return nil, initial, p.errorf(initial, ErrExpectedStmt, p.describe(initial))
}
