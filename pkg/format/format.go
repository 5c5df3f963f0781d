package format

import (
	"strings"

	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/leapstack-labs/minisql/pkg/token"
)

// Format renders every statement of prog on its own line, each terminated
// by a semicolon. An empty program formats to the empty string.
func Format(prog *parser.Program) string {
	p := newPrinter()
	for _, stmt := range prog.Statements {
		p.formatStatement(stmt)
		p.write(";")
		p.writeln()
	}
	return p.String()
}

// Statement renders a single statement without a trailing semicolon.
func Statement(stmt parser.Statement) string {
	p := newPrinter()
	p.formatStatement(stmt)
	return p.String()
}

// Quote renders s as a string literal, doubling embedded quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Ident renders an identifier bare when it would lex back to the same
// identifier, and double-quoted otherwise. Names that start with a reserved
// word must be quoted because the keyword lexer takes the longest reserved
// prefix.
func Ident(name string) string {
	if isBareIdent(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func isBareIdent(name string) bool {
	if name == "" {
		return false
	}
	if name[0] < 'a' || name[0] > 'z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '$' && c != '_' {
			return false
		}
	}
	for _, kw := range token.Keywords() {
		if strings.HasPrefix(name, kw) {
			return false
		}
	}
	return true
}
