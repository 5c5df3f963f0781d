package format

import (
	"testing"

	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/leapstack-labs/minisql/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple select",
			input:    "select a, b from t",
			expected: "SELECT a, b FROM t;\n",
		},
		{
			name:     "select without from",
			input:    "SELECT 1, 'x'",
			expected: "SELECT 1, 'x';\n",
		},
		{
			name:     "insert",
			input:    "insert into users values (105,233)",
			expected: "INSERT INTO users VALUES (105, 233);\n",
		},
		{
			name:     "create table",
			input:    "create table users(id int,name text)",
			expected: "CREATE TABLE users (id INT, name TEXT);\n",
		},
		{
			name:     "escaped string",
			input:    "SELECT 'it''s'",
			expected: "SELECT 'it''s';\n",
		},
		{
			name:     "quoted identifiers stay quoted",
			input:    `SELECT "Id", "a b", "x""y" FROM "T"`,
			expected: `SELECT "Id", "a b", "x""y" FROM "T";` + "\n",
		},
		{
			name:     "identifier starting with a keyword is quoted",
			input:    `SELECT "intx", "asset"`,
			expected: `SELECT "intx", "asset";` + "\n",
		},
		{
			name:  "several statements",
			input: "create table t (a int);; insert into t values (1); select a from t",
			expected: "CREATE TABLE t (a INT);\n" +
				"INSERT INTO t VALUES (1);\n" +
				"SELECT a FROM t;\n",
		},
		{
			name:     "empty program",
			input:    "  \n",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Format(prog))
		})
	}
}

func TestStatement(t *testing.T) {
	prog, err := parser.Parse("select a from t")
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t", Statement(prog.Statements[0]))
}

func TestIdent(t *testing.T) {
	assert.Equal(t, "users", Ident("users"))
	assert.Equal(t, "a$b_1", Ident("a$b_1"))
	assert.Equal(t, `"Users"`, Ident("Users"))
	assert.Equal(t, `"1a"`, Ident("1a"))
	assert.Equal(t, `"select"`, Ident("select"))
	assert.Equal(t, `"tablename"`, Ident("tablename"))
	assert.Equal(t, `"a""b"`, Ident(`a"b`))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "''", Quote(""))
	assert.Equal(t, "'a '' b'", Quote("a ' b"))
}

func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{
		"SELECT id, name FROM users",
		`select "Mixed Case", 'str''ing', 1.5e-3, .5, 7. from "Weird""Table"`,
		"INSERT INTO users VALUES (105, 233, 'x')",
		`CREATE TABLE users (id INT, name TEXT, "intval" INT)`,
		`CREATE TABLE "select" ("from" TEXT)`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			original, err := parser.Parse(input)
			require.NoError(t, err)

			formatted := Format(original)
			reparsed, err := parser.Parse(formatted)
			require.NoError(t, err, "formatted output must parse: %s", formatted)

			want, got := astTokens(original), astTokens(reparsed)
			require.Len(t, got, len(want))
			for i := range want {
				assert.True(t, want[i].Equals(got[i]), "want %s, got %s", want[i], got[i])
			}
			assert.Equal(t, formatted, Format(reparsed), "formatting is idempotent")
		})
	}
}

// astTokens flattens the tokens held by a program's statements.
func astTokens(prog *parser.Program) []token.Token {
	var out []token.Token
	exprs := func(list []parser.Expr) {
		for _, e := range list {
			out = append(out, e.(*parser.Literal).Token)
		}
	}
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *parser.SelectStmt:
			exprs(s.Items)
			if s.From != nil {
				out = append(out, *s.From)
			}
		case *parser.InsertStmt:
			out = append(out, s.Table)
			exprs(s.Values)
		case *parser.CreateTableStmt:
			out = append(out, s.Name)
			for _, c := range s.Columns {
				out = append(out, c.Name, c.Type)
			}
		}
	}
	return out
}
