package parser

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/minisql/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func start() cursor {
	return cursor{line: 1, col: 1}
}

func TestLexNumeric(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "105", want: "105", ok: true},
		{input: "123.", want: "123.", ok: true},
		{input: ".1", want: ".1", ok: true},
		{input: "1e5", want: "1e5", ok: true},
		{input: "1.1e-2", want: "1.1e-2", ok: true},
		{input: "1.1e+2", want: "1.1e+2", ok: true},
		{input: "105,", want: "105", ok: true},
		{input: "42)", want: "42", ok: true},
		{input: "7 ", want: "7", ok: true},

		{input: "e4", ok: false},
		{input: "1..", ok: false},
		{input: "1ee4", ok: false},
		{input: "1e", ok: false},
		{input: "1e+", ok: false},
		{input: "1e5.2", ok: false},
		{input: "1.2.3", ok: false},
		{input: ".", ok: false},
		{input: ".e1", ok: false},
		{input: "abc", ok: false},
		{input: "-1", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, cur, ok := lexNumeric(tt.input, start())
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Nil(t, tok)
				assert.Equal(t, start(), cur, "cursor must not move on failure")
				return
			}
			require.NotNil(t, tok)
			assert.Equal(t, token.Numeric, tok.Kind)
			assert.Equal(t, tt.want, tok.Value)
			assert.Equal(t, len(tt.want), cur.offset)
			assert.Equal(t, 1+len(tt.want), cur.col)
		})
	}
}

func TestLexString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		end   int
		ok    bool
	}{
		{name: "simple", input: "'abc'", want: "abc", end: 5, ok: true},
		{name: "empty", input: "''", want: "", end: 2, ok: true},
		{name: "doubled quote", input: "'a '' b'", want: "a ' b", end: 8, ok: true},
		{name: "leading doubled quote", input: "'''x'", want: "'x", end: 5, ok: true},
		{name: "stops at closing quote", input: "'a', 'b'", want: "a", end: 3, ok: true},
		{name: "keeps case", input: "'Hello World'", want: "Hello World", end: 13, ok: true},
		{name: "double quote inside", input: `'say "hi"'`, want: `say "hi"`, end: 10, ok: true},
		{name: "unterminated", input: "'abc", ok: false},
		{name: "unterminated after escape", input: "'abc''", ok: false},
		{name: "no opening quote", input: "abc'", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, cur, ok := lexString(tt.input, start())
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Nil(t, tok)
				assert.Equal(t, start(), cur)
				return
			}
			assert.Equal(t, token.String, tok.Kind)
			assert.Equal(t, tt.want, tok.Value)
			assert.Equal(t, tt.end, cur.offset)
		})
	}
}

func TestLexKeyword(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "select", want: "select", ok: true},
		{input: "SELECT", want: "select", ok: true},
		{input: "SeLeCt a", want: "select", ok: true},
		{input: "int", want: "int", ok: true},
		{input: "into", want: "into", ok: true},
		{input: "INTO users", want: "into", ok: true},
		{input: "int,", want: "int", ok: true},
		{input: "intx", want: "int", ok: true},
		{input: "text)", want: "text", ok: true},
		{input: "as", want: "as", ok: true},
		{input: "id", ok: false},
		{input: "users", ok: false},
		{input: "sel", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, cur, ok := lexKeyword(tt.input, start())
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Equal(t, start(), cur)
				return
			}
			assert.Equal(t, token.Keyword, tok.Kind)
			assert.Equal(t, tt.want, tok.Value)
			assert.Equal(t, len(tt.want), cur.offset, "token spans exactly the match")
		})
	}
}

func TestLexSymbol(t *testing.T) {
	for _, c := range []string{";", ",", "(", ")", "*"} {
		tok, cur, ok := lexSymbol(c, start())
		require.True(t, ok, c)
		require.NotNil(t, tok)
		assert.Equal(t, token.Symbol, tok.Kind)
		assert.Equal(t, c, tok.Value)
		assert.Equal(t, 2, cur.col)
	}

	for _, c := range []string{" ", "\t"} {
		tok, cur, ok := lexSymbol(c, start())
		require.True(t, ok)
		assert.Nil(t, tok, "whitespace produces no token")
		assert.Equal(t, 1, cur.offset)
		assert.Equal(t, 2, cur.col)
	}

	tok, cur, ok := lexSymbol("\n", cursor{line: 1, col: 9})
	require.True(t, ok)
	assert.Nil(t, tok)
	assert.Equal(t, 2, cur.line)
	assert.Equal(t, 1, cur.col)

	_, cur, ok = lexSymbol(".", start())
	assert.False(t, ok)
	assert.Equal(t, start(), cur)
}

func TestLexIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "bare", input: "users", want: "users", ok: true},
		{name: "bare folds case", input: "UserName", want: "username", ok: true},
		{name: "dollar and underscore", input: "a$b_c1 ", want: "a$b_c1", ok: true},
		{name: "quoted keeps case", input: `"UserName"`, want: "UserName", ok: true},
		{name: "quoted allows anything", input: `"a b;c"`, want: "a b;c", ok: true},
		{name: "quoted doubled quote", input: `"a""b"`, want: `a"b`, ok: true},
		{name: "quoted empty rejected", input: `""`, ok: false},
		{name: "quoted unterminated", input: `"abc`, ok: false},
		{name: "leading digit", input: "1abc", ok: false},
		{name: "leading underscore", input: "_abc", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, cur, ok := lexIdentifier(tt.input, start())
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Equal(t, start(), cur)
				return
			}
			assert.Equal(t, token.Identifier, tok.Kind)
			assert.Equal(t, tt.want, tok.Value)
		})
	}
}

func TestLex(t *testing.T) {
	tokens, err := Lex("SELECT id, 'it''s', 1.5e3 FROM \"Users\";")
	require.NoError(t, err)

	want := []Token{
		{Value: "select", Kind: token.Keyword},
		{Value: "id", Kind: token.Identifier},
		{Value: ",", Kind: token.Symbol},
		{Value: "it's", Kind: token.String},
		{Value: ",", Kind: token.Symbol},
		{Value: "1.5e3", Kind: token.Numeric},
		{Value: "from", Kind: token.Keyword},
		{Value: "Users", Kind: token.Identifier},
		{Value: ";", Kind: token.Symbol},
	}
	require.Len(t, tokens, len(want))
	for i := range want {
		assert.True(t, want[i].Equals(tokens[i]), "token %d: want %s, got %s", i, want[i], tokens[i])
	}
}

func TestLexPositions(t *testing.T) {
	tokens, err := Lex("select a,\n  'x'\n\tfrom t")
	require.NoError(t, err)
	require.Len(t, tokens, 6)

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Pos)
	assert.Equal(t, Position{Line: 1, Column: 8, Offset: 7}, tokens[1].Pos)
	assert.Equal(t, Position{Line: 1, Column: 9, Offset: 8}, tokens[2].Pos)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 12}, tokens[3].Pos)
	assert.Equal(t, Position{Line: 3, Column: 2, Offset: 17}, tokens[4].Pos)
	assert.Equal(t, Position{Line: 3, Column: 7, Offset: 22}, tokens[5].Pos)
}

func TestLexWhitespaceOnly(t *testing.T) {
	for _, input := range []string{"", " ", "\t\t", "\n\n  \n", " \t\n"} {
		tokens, err := Lex(input)
		require.NoError(t, err)
		assert.Empty(t, tokens)
	}
}

func TestLexKeywordPrecedence(t *testing.T) {
	tokens, err := Lex("SELECT select Select")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	for _, tok := range tokens {
		assert.Equal(t, token.Keyword, tok.Kind)
		assert.Equal(t, "select", tok.Value)
	}

	tokens, err = Lex(`"select"`)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, token.Identifier, tokens[0].Kind, "quoting turns a keyword into an identifier")
}

func TestLexDeterministic(t *testing.T) {
	input := "CREATE TABLE t (a INT, b TEXT); INSERT INTO t VALUES (1, 'x');"
	first, err := Lex(input)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Lex(input)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		pos      Position
		prev     string
		hasPrev  bool
		produced int
	}{
		{
			name:  "unrecognised first character",
			input: "#",
			pos:   Position{Line: 1, Column: 1, Offset: 0},
		},
		{
			name:     "unterminated string",
			input:    "SELECT 'abc",
			pos:      Position{Line: 1, Column: 8, Offset: 7},
			prev:     "select",
			hasPrev:  true,
			produced: 1,
		},
		{
			name:     "unrecognised character on later line",
			input:    "select a\nfrom t\n  ?",
			pos:      Position{Line: 3, Column: 3, Offset: 18},
			prev:     "t",
			hasPrev:  true,
			produced: 4,
		},
		{
			name:     "invalid number",
			input:    "select 1..2",
			pos:      Position{Line: 1, Column: 8, Offset: 7},
			prev:     "select",
			hasPrev:  true,
			produced: 1,
		},
		{
			name:     "empty quoted identifier",
			input:    `select ""`,
			pos:      Position{Line: 1, Column: 8, Offset: 7},
			prev:     "select",
			hasPrev:  true,
			produced: 1,
		},
		{
			name:     "carriage return",
			input:    "select a\r\n",
			pos:      Position{Line: 1, Column: 9, Offset: 8},
			prev:     "a",
			hasPrev:  true,
			produced: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.input)
			require.Error(t, err)

			var lexErr *LexError
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.pos, lexErr.Pos)
			assert.Equal(t, tt.hasPrev, lexErr.HasPrev)
			assert.Equal(t, tt.prev, lexErr.Prev)
			assert.Len(t, tokens, tt.produced, "tokens before the failure are returned")
			assert.Contains(t, err.Error(), tt.pos.String())
		})
	}
}

func TestLexErrorMessage(t *testing.T) {
	_, err := Lex("select #")
	require.Error(t, err)
	assert.Equal(t, `lexer error at 1:8: unable to lex token after "select"`, err.Error())

	_, err = Lex("@")
	require.Error(t, err)
	assert.Equal(t, "lexer error at 1:1: unable to lex token", err.Error())
}

func TestLexerNextStopsAtError(t *testing.T) {
	l := NewLexer("a # b")

	tok, ok, err := l.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", tok.Value)

	_, ok, err = l.Next()
	require.Error(t, err)
	assert.False(t, ok)

	_, _, again := l.Next()
	assert.Equal(t, err.Error(), again.Error(), "lexer does not advance past an error")
}
