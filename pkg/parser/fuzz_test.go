package parser

import (
	"errors"
	"testing"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"SELECT id, name FROM users",
		"INSERT INTO users VALUES (105, 233);",
		"CREATE TABLE users (id INT, name TEXT);",
		"select 'a '' b', 1.1e-2, \"Quoted\"\"Id\" from t;;select 1",
		"SELECT a b",
		"'unterminated",
		"1..2 1ee4 e4",
		"intotext asint",
		"\n\t ;;",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		tokens, lexErr := Lex(input)
		for i := 1; i < len(tokens); i++ {
			if tokens[i].Pos.Offset <= tokens[i-1].Pos.Offset {
				t.Fatalf("token offsets not increasing: %v then %v", tokens[i-1].Pos, tokens[i].Pos)
			}
		}

		prog, err := Parse(input)
		if err != nil {
			if prog != nil {
				t.Fatalf("partial program returned with error %v", err)
			}
			var le *LexError
			var pe *ParseError
			if !errors.As(err, &le) && !errors.As(err, &pe) {
				t.Fatalf("unexpected error type %T", err)
			}
			if lexErr != nil && !errors.As(err, &le) {
				t.Fatalf("lexer failed but parser reported %v", err)
			}
			return
		}
		if lexErr != nil {
			t.Fatalf("parse succeeded although lexing failed: %v", lexErr)
		}
		for _, stmt := range prog.Statements {
			if stmt == nil {
				t.Fatal("nil statement in program")
			}
		}
	})
}
