package parser

import (
	"strings"

	"github.com/leapstack-labs/minisql/pkg/token"
)

// cursor tracks the lexer's position in the input.
type cursor struct {
	offset int // byte offset into input
	line   int // 1-based
	col    int // 1-based
}

func (c cursor) position() Position {
	return Position{Line: c.line, Column: c.col, Offset: c.offset}
}

// next returns the cursor advanced past ch.
func (c cursor) next(ch byte) cursor {
	c.offset++
	if ch == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return c
}

// skip returns the cursor advanced past n bytes of input that contain no newline.
func (c cursor) skip(n int) cursor {
	c.offset += n
	c.col += n
	return c
}

// lexFunc recognises one token at ic. On success it returns the cursor after
// the consumed input and, unless the input was whitespace, the token. On
// failure it returns ic unchanged.
type lexFunc func(input string, ic cursor) (*Token, cursor, bool)

// lexers are tried in order; the first match wins. Keywords come first so a
// reserved word is never lexed as an identifier.
var lexers = [...]lexFunc{
	lexKeyword,
	lexSymbol,
	lexString,
	lexNumeric,
	lexIdentifier,
}

// reserved is the keyword table in lookup order.
var reserved = token.Keywords()

// Lexer tokenizes minisql input.
type Lexer struct {
	input string
	cur   cursor
	last  *Token // most recently produced token
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		cur:   cursor{line: 1, col: 1},
	}
}

// Pos returns the lexer's current position.
func (l *Lexer) Pos() Position {
	return l.cur.position()
}

// Next returns the next token. ok is false once the input is exhausted.
// After an error the lexer does not advance; every further call returns the
// same error.
func (l *Lexer) Next() (tok Token, ok bool, err error) {
	for l.cur.offset < len(l.input) {
		matched := false
		for _, lex := range lexers {
			t, next, found := lex(l.input, l.cur)
			if !found {
				continue
			}
			l.cur = next
			matched = true
			if t != nil {
				l.last = t
				return *t, true, nil
			}
			break
		}
		if !matched {
			lexErr := &LexError{Pos: l.cur.position()}
			if l.last != nil {
				lexErr.Prev = l.last.Value
				lexErr.HasPrev = true
			}
			return Token{}, false, lexErr
		}
	}
	return Token{}, false, nil
}

// Lex returns all tokens in input. On failure it returns the tokens produced
// before the offending position together with a *LexError.
func Lex(input string) ([]Token, error) {
	tokens, _, err := lexAll(NewLexer(input))
	return tokens, err
}

// lexAll drains l and also returns the position just past the last input byte.
func lexAll(l *Lexer) ([]Token, Position, error) {
	var tokens []Token
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return tokens, l.Pos(), err
		}
		if !ok {
			return tokens, l.Pos(), nil
		}
		tokens = append(tokens, tok)
	}
}

// lexKeyword matches the longest reserved word starting at ic.
func lexKeyword(input string, ic cursor) (*Token, cursor, bool) {
	match := longestMatch(input, ic, reserved)
	if match == "" {
		return nil, ic, false
	}
	return &Token{
		Value: match,
		Kind:  token.Keyword,
		Pos:   ic.position(),
	}, ic.skip(len(match)), true
}

// longestMatch scans input from ic, case-folded, and returns the longest
// option that the scanned text matched exactly. Options are pruned as soon as
// the scanned text stops being a prefix of them; scanning ends once every
// option is pruned. INT and INTO are the reason a full match does not stop
// the scan.
func longestMatch(input string, ic cursor, options []string) string {
	var value strings.Builder
	skipped := make([]bool, len(options))
	remaining := len(options)
	match := ""

	for i := ic.offset; i < len(input) && remaining > 0; i++ {
		value.WriteByte(toLower(input[i]))
		scanned := value.String()

		for j, opt := range options {
			if skipped[j] {
				continue
			}
			if opt == scanned {
				skipped[j] = true
				remaining--
				if len(opt) > len(match) {
					match = opt
				}
				continue
			}
			if len(scanned) > len(opt) || !strings.HasPrefix(opt, scanned) {
				skipped[j] = true
				remaining--
			}
		}
	}
	return match
}

// lexSymbol matches a single-character symbol. Spaces, tabs and newlines are
// consumed here without producing a token.
func lexSymbol(input string, ic cursor) (*Token, cursor, bool) {
	c := input[ic.offset]
	switch c {
	case ' ', '\t', '\n':
		return nil, ic.next(c), true
	}
	if !token.IsSymbol(c) {
		return nil, ic, false
	}
	return &Token{
		Value: string(c),
		Kind:  token.Symbol,
		Pos:   ic.position(),
	}, ic.next(c), true
}

// lexString matches a single-quoted string literal.
func lexString(input string, ic cursor) (*Token, cursor, bool) {
	value, cur, ok := lexDelimited(input, ic, '\'')
	if !ok {
		return nil, ic, false
	}
	return &Token{
		Value: value,
		Kind:  token.String,
		Pos:   ic.position(),
	}, cur, true
}

// lexDelimited reads a run enclosed in delim. A doubled delimiter inside the
// run stands for one literal delimiter: 'it''s' -> it's. Fails without
// consuming input if the run is not terminated.
func lexDelimited(input string, ic cursor, delim byte) (string, cursor, bool) {
	if ic.offset >= len(input) || input[ic.offset] != delim {
		return "", ic, false
	}
	cur := ic.next(delim)

	var value strings.Builder
	for cur.offset < len(input) {
		c := input[cur.offset]
		if c == delim {
			if cur.offset+1 < len(input) && input[cur.offset+1] == delim {
				value.WriteByte(delim)
				cur = cur.skip(2)
				continue
			}
			return value.String(), cur.next(c), true
		}
		value.WriteByte(c)
		cur = cur.next(c)
	}
	return "", ic, false
}

// lexNumeric matches an integer, decimal or scientific literal: 105, 123.,
// .1, 1e5, 1.1e-2. The exponent marker must be preceded by at least one digit
// and followed by at least one digit.
func lexNumeric(input string, ic cursor) (*Token, cursor, bool) {
	i := ic.offset
	digits := 0

	for i < len(input) && isDigit(input[i]) {
		i++
		digits++
	}
	if i < len(input) && input[i] == '.' {
		i++
		for i < len(input) && isDigit(input[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return nil, ic, false
	}

	if i < len(input) && input[i] == 'e' {
		j := i + 1
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(input) && isDigit(input[j]) {
			j++
			expDigits++
		}
		if expDigits == 0 {
			return nil, ic, false
		}
		i = j
	}

	// A second period or exponent marker makes the whole literal invalid.
	if i < len(input) && (input[i] == '.' || input[i] == 'e') {
		return nil, ic, false
	}

	n := i - ic.offset
	return &Token{
		Value: input[ic.offset:i],
		Kind:  token.Numeric,
		Pos:   ic.position(),
	}, ic.skip(n), true
}

// lexIdentifier matches a double-quoted identifier (case preserved) or a bare
// identifier (lowercased). Both forms must contain at least one character.
func lexIdentifier(input string, ic cursor) (*Token, cursor, bool) {
	if value, cur, ok := lexDelimited(input, ic, '"'); ok {
		if value == "" {
			return nil, ic, false
		}
		return &Token{
			Value: value,
			Kind:  token.Identifier,
			Pos:   ic.position(),
		}, cur, true
	}

	if !isLetter(input[ic.offset]) {
		return nil, ic, false
	}

	i := ic.offset + 1
	for i < len(input) && isIdentChar(input[i]) {
		i++
	}
	return &Token{
		Value: strings.ToLower(input[ic.offset:i]),
		Kind:  token.Identifier,
		Pos:   ic.position(),
	}, ic.skip(i - ic.offset), true
}

// isLetter returns true if ch is an ASCII letter.
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '$' || ch == '_'
}

func toLower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}
