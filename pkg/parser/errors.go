package parser

import "fmt"

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Message)
}

// LexError is returned when no token can be recognised at Pos.
type LexError struct {
	Pos Position
	// Prev is the value of the last token produced before the failure.
	// It is only meaningful when HasPrev is true.
	Prev    string
	HasPrev bool
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at %s: %s", e.Pos, e.Reason())
}

// Reason describes the failure without its position.
func (e *LexError) Reason() string {
	if e.HasPrev {
		return fmt.Sprintf("unable to lex token after %q", e.Prev)
	}
	return "unable to lex token"
}

// Common error messages
const (
	ErrExpected         = "expected %s, got %s"
	ErrExpectedStmt     = "expected statement, got %s"
	ErrMissingSemicolon = "missing semicolon between statements, got %s"
)
