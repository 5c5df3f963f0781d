// Package main provides tests for the minisql CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/minisql/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "minisql v")
}

func TestHelpCommand(t *testing.T) {
	out, _, err := run(t, "", "--help")
	require.NoError(t, err)

	for _, expected := range []string{"parse", "tokens", "check", "fmt", "repl", "watch", "completion"} {
		assert.Contains(t, out, expected)
	}
}

func TestParseCommandJSON(t *testing.T) {
	out, _, err := run(t, "", "parse", "-e", "SELECT id, name FROM users; INSERT INTO users VALUES (1, 'a')", "-o", "json")
	require.NoError(t, err)

	var view struct {
		Statements []struct {
			Kind string `json:"kind"`
			SQL  string `json:"sql"`
		} `json:"statements"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Statements, 2)
	assert.Equal(t, "select", view.Statements[0].Kind)
	assert.Equal(t, "INSERT INTO users VALUES (1, 'a')", view.Statements[1].SQL)
}

func TestParseCommandStdinFormat(t *testing.T) {
	out, _, err := run(t, "select a from t\n;;insert into t values (1)", "parse", "--format")
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t;\nINSERT INTO t VALUES (1);\n", out)
}

func TestParseCommandError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT a\nFROM"), 0o600))

	_, errOut, err := run(t, "", "parse", "--no-color", "-o", "text", path)
	require.Error(t, err)
	assert.Contains(t, errOut, path+":2:5: expected table name after FROM, got end of input")
}

func TestTokensCommand(t *testing.T) {
	out, errOut, err := run(t, "", "tokens", "-o", "json", "-e", "select ?")
	require.Error(t, err, "lexer failure exits non-zero")

	assert.Contains(t, out, `"value": "select"`)
	assert.Contains(t, out, `"stage": "lex"`)
	assert.Empty(t, errOut)
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.sql"), []byte("CREATE TABLE t (a INT);"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.sql"), []byte("SELECT a b;"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not sql"), 0o600))

	out, _, err := run(t, "", "check", dir, "-o", "json", "--jobs", "2")
	require.Error(t, err)

	var summary struct {
		Files []struct {
			Path string `json:"path"`
			OK   bool   `json:"ok"`
		} `json:"files"`
		Failed int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	require.Len(t, summary.Files, 2)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, summary.Files[0].OK)
	assert.False(t, summary.Files[1].OK)
}

func TestFmtWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.sql")
	require.NoError(t, os.WriteFile(path, []byte("select \"ID\" from users"), 0o600))

	_, _, err := run(t, "", "fmt", "--write", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT \"ID\" FROM users;\n", string(data))
}

func TestInvalidOutputMode(t *testing.T) {
	_, _, err := run(t, "", "parse", "-e", "select 1", "-o", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output mode")
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "minisql")
}
