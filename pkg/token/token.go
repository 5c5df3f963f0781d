// Package token defines the lexical tokens of the minisql dialect.
//
// The reserved words and symbols are fixed, package-level tables. They are
// never modified after initialization, so lookups are safe from any number
// of goroutines.
package token

import "fmt"

// Kind classifies a lexical token.
type Kind int

// Token kinds.
const (
	Keyword Kind = iota
	Symbol
	Identifier
	String
	Numeric
)

var kindNames = [...]string{
	Keyword:    "keyword",
	Symbol:     "symbol",
	Identifier: "identifier",
	String:     "string",
	Numeric:    "numeric",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Reserved words. Values are lowercase, as produced by the lexer.
const (
	Select = "select"
	From   = "from"
	As     = "as"
	Table  = "table"
	Create = "create"
	Insert = "insert"
	Into   = "into"
	Values = "values"
	Int    = "int"
	Text   = "text"
)

// Symbols.
const (
	Semicolon = ";"
	Asterisk  = "*"
	Comma     = ","
	LParen    = "("
	RParen    = ")"
)

// keywords is ordered the way the lexer tries them.
var keywords = []string{
	Select,
	Insert,
	Values,
	Table,
	Create,
	From,
	Into,
	Text,
	Int,
	As,
}

var keywordSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		m[kw] = struct{}{}
	}
	return m
}()

// Keywords returns a copy of the reserved word table.
func Keywords() []string {
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}

// IsKeyword reports whether s is a reserved word. s must be lowercase.
func IsKeyword(s string) bool {
	_, ok := keywordSet[s]
	return ok
}

// IsSymbol reports whether c is one of the single-character symbols.
func IsSymbol(c byte) bool {
	switch c {
	case ';', ',', '(', ')', '*':
		return true
	}
	return false
}

// Token represents a lexical token with position information.
type Token struct {
	Value string
	Kind  Kind
	Pos   Position
}

// Equals compares value and kind. Positions are ignored.
func (t Token) Equals(other Token) bool {
	return t.Value == other.Value && t.Kind == other.Kind
}

// Is reports whether t has the given kind and value.
func (t Token) Is(kind Kind, value string) bool {
	return t.Kind == kind && t.Value == value
}

// String returns a short description such as `keyword "select"`.
func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Value)
}

// KeywordToken returns an unpositioned keyword token.
func KeywordToken(kw string) Token {
	return Token{Value: kw, Kind: Keyword}
}

// SymbolToken returns an unpositioned symbol token.
func SymbolToken(sym string) Token {
	return Token{Value: sym, Kind: Symbol}
}
