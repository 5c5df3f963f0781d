package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/leapstack-labs/minisql/internal/cli/config"
	"github.com/leapstack-labs/minisql/internal/cli/output"
	clitestutil "github.com/leapstack-labs/minisql/internal/cli/testutil"
	"github.com/leapstack-labs/minisql/internal/testutil"
	"github.com/spf13/cobra"
)

// execute runs cmd with args, a config in json mode unless mutate changes
// it, and stdin. It returns stdout, stderr and the command error.
func execute(t *testing.T, cmd *cobra.Command, stdin string, mutate func(*config.Config), args ...string) (string, string, error) {
	t.Helper()

	cfg := config.Default()
	cfg.Output = "json"
	if mutate != nil {
		mutate(cfg)
	}

	// Mirror the root command, which reports errors itself.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	ctx := config.WithContext(context.Background(), cfg, testutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

// newTestCommandContext builds a CommandContext around a test renderer.
func newTestCommandContext(t *testing.T, mode output.Mode) (*CommandContext, *clitestutil.TestRenderer) {
	t.Helper()
	tr := clitestutil.NewTestRenderer(mode)
	return &CommandContext{
		Ctx:      context.Background(),
		Cfg:      config.Default(),
		Logger:   testutil.NewTestLogger(t),
		Renderer: tr.Renderer,
	}, tr
}
