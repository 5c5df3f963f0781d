package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/leapstack-labs/minisql/internal/cli/output"
	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Validate SQL files",
		Long: `Parse every SQL file under the given paths and report the ones that fail.

Directories are walked recursively; only files with one of the configured
extensions (check.extensions, default .sql) are picked up. Files are parsed
concurrently, --jobs at a time.`,
		Example: `  minisql check schema/ queries/report.sql
  minisql check . --jobs 8 -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			checkCfg := cmdCtx.Cfg.GetCheckConfig()
			if cmd.Flags().Changed("jobs") {
				checkCfg.Jobs = jobs
			}
			if checkCfg.Jobs < 0 {
				return fmt.Errorf("--jobs must not be negative, got %d", checkCfg.Jobs)
			}

			files, err := collectFiles(args, checkCfg.Extensions)
			if err != nil {
				return err
			}
			cmdCtx.Logger.Debug("checking files", "count", len(files), "jobs", checkCfg.Jobs)

			results, err := checkFiles(cmdCtx.Ctx, files, checkCfg.Jobs)
			if err != nil {
				return err
			}
			if err := cmdCtx.Renderer.CheckResults(results); err != nil {
				return err
			}

			if summary := output.NewCheckSummary(results); summary.Failed > 0 {
				return errInputsFailed(summary.Failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Files to parse concurrently (0 = number of CPUs)")
	return cmd
}

// collectFiles expands paths into a sorted, de-duplicated file list.
// Explicit file arguments are kept whatever their extension.
func collectFiles(paths []string, extensions []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasExtension(path, extensions) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// checkFiles parses files concurrently. Results keep the order of files.
// A lex or parse failure is a failed result; a read failure aborts the run.
func checkFiles(ctx context.Context, files []string, jobs int) ([]output.CheckResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]output.CheckResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own arguments
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			results[i] = checkSource(path, string(data))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkSource(path, text string) output.CheckResult {
	prog, err := parser.Parse(text)
	if err != nil {
		diag := output.NewDiagnosticView("", err)
		return output.CheckResult{Path: path, Diagnostic: &diag}
	}
	return output.CheckResult{Path: path, OK: true, Statements: len(prog.Statements)}
}
