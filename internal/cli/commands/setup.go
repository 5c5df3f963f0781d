package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/minisql/internal/cli/config"
	"github.com/leapstack-labs/minisql/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Ctx      context.Context
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config and logger stored by the root
// command and builds a renderer for the command's writers.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.GetConfig(ctx)

	mode, err := output.ParseMode(cfg.Output)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Ctx:      ctx,
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode, output.WithNoColor(cfg.NoColor)),
	}, nil
}

// source is one unit of SQL text read from a file, stdin or a flag.
type source struct {
	Name string
	Path string // empty unless read from a file
	Text string
}

// readSources resolves the inputs of parse, tokens and fmt. An inline
// expression wins over arguments; no arguments or "-" read stdin.
func readSources(cmd *cobra.Command, args []string, expr string) ([]source, error) {
	if expr != "" {
		return []source{{Name: "<expr>", Text: expr}}, nil
	}
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []source{{Name: "<stdin>", Text: string(data)}}, nil
	}

	sources := make([]source, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		sources = append(sources, source{Name: path, Path: path, Text: string(data)})
	}
	return sources, nil
}

// errInputsFailed reports how many inputs did not lex or parse. The
// diagnostics themselves have already been rendered.
func errInputsFailed(failed, total int) error {
	return fmt.Errorf("%d of %d input(s) failed", failed, total)
}
