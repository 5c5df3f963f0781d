package output

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/leapstack-labs/minisql/pkg/token"
)

// Diagnostic is an error split into stage, position and message.
type Diagnostic struct {
	Stage   string
	Pos     token.Position
	Message string
}

// Describe extracts the position and message of a lex or parse failure.
func Describe(err error) Diagnostic {
	var lexErr *parser.LexError
	var parseErr *parser.ParseError
	switch {
	case errors.As(err, &lexErr):
		return Diagnostic{Stage: "lex", Pos: lexErr.Pos, Message: lexErr.Reason()}
	case errors.As(err, &parseErr):
		return Diagnostic{Stage: "parse", Pos: parseErr.Pos, Message: parseErr.Message}
	}
	return Diagnostic{Stage: "io", Message: err.Error()}
}

// String formats the diagnostic as "source:line:col: message", the layout
// editors and compilers use.
func (d Diagnostic) String(source string) string {
	if source == "" {
		source = "<input>"
	}
	if !d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", source, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", source, d.Pos.Line, d.Pos.Column, d.Message)
}
