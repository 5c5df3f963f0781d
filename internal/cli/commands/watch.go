package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <path>...",
		Short: "Re-check SQL files whenever they change",
		Long: `Check the given files and directories once, then watch them and re-check
each SQL file as it is written. Changes arriving within the debounce window
are checked together. Stop with Ctrl+C.`,
		Example: `  minisql watch schema/
  minisql watch queries/report.sql --debounce 500ms`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("debounce") {
				debounce = time.Duration(cmdCtx.Cfg.GetWatchConfig().DebounceMS) * time.Millisecond
			}

			session, err := newWatchSession(cmdCtx, args, debounce)
			if err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}
			defer func() { _ = watcher.Close() }()

			return session.run(cmdCtx.Ctx, watcher)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before re-checking (overrides watch.debounce_ms)")
	return cmd
}

// watchSession re-checks changed files under a set of roots.
type watchSession struct {
	cmdCtx     *CommandContext
	roots      []string
	dirs       []string            // directory roots, watched recursively
	files      map[string]struct{} // explicit file roots
	extensions []string
	jobs       int
	debounce   time.Duration
}

func newWatchSession(cmdCtx *CommandContext, roots []string, debounce time.Duration) (*watchSession, error) {
	if debounce < 0 {
		return nil, fmt.Errorf("--debounce must not be negative, got %s", debounce)
	}
	checkCfg := cmdCtx.Cfg.GetCheckConfig()
	s := &watchSession{
		cmdCtx:     cmdCtx,
		roots:      roots,
		files:      make(map[string]struct{}),
		extensions: checkCfg.Extensions,
		jobs:       checkCfg.Jobs,
		debounce:   debounce,
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if info.IsDir() {
			s.dirs = append(s.dirs, filepath.Clean(root))
		} else {
			s.files[filepath.Clean(root)] = struct{}{}
		}
	}
	return s, nil
}

// addWatches registers every directory root recursively and the parent
// directory of every file root.
func (s *watchSession) addWatches(watcher *fsnotify.Watcher) error {
	for _, dir := range s.dirs {
		if err := watchDirRecursive(watcher, dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	for file := range s.files {
		if err := watcher.Add(filepath.Dir(file)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", file, err)
		}
	}
	return nil
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// relevant reports whether event should trigger a re-check.
func (s *watchSession) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	if _, ok := s.files[name]; ok {
		return true
	}
	if !hasExtension(name, s.extensions) {
		return false
	}
	for _, dir := range s.dirs {
		rel, err := filepath.Rel(dir, name)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// check parses files and renders the results. Read failures are logged,
// since a file may vanish between the event and the check.
func (s *watchSession) check(ctx context.Context, files []string) {
	if len(files) == 0 {
		return
	}
	results, err := checkFiles(ctx, files, s.jobs)
	if err != nil {
		s.cmdCtx.Logger.Warn("check failed", "error", err)
		return
	}
	if err := s.cmdCtx.Renderer.CheckResults(results); err != nil {
		s.cmdCtx.Logger.Error("render failed", "error", err)
	}
}

// run checks every root once, then re-checks changed files until ctx is done.
func (s *watchSession) run(ctx context.Context, watcher *fsnotify.Watcher) error {
	if err := s.addWatches(watcher); err != nil {
		return err
	}

	files, err := collectFiles(s.roots, s.extensions)
	if err != nil {
		return err
	}
	s.check(ctx, files)
	s.cmdCtx.Logger.Info("watching for changes", "paths", s.roots, "debounce", s.debounce)

	pending := make(map[string]struct{})
	var (
		debounceTimer *time.Timer
		fire          <-chan time.Time
	)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				s.watchNewDir(watcher, event.Name)
			}
			if !s.relevant(event) {
				continue
			}
			s.cmdCtx.Logger.Debug("file changed", "file", event.Name, "op", event.Op.String())
			pending[filepath.Clean(event.Name)] = struct{}{}

			// Debounce
			if debounceTimer == nil {
				debounceTimer = time.NewTimer(s.debounce)
			} else {
				debounceTimer.Reset(s.debounce)
			}
			fire = debounceTimer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			clear(pending)
			slices.Sort(changed)
			s.check(ctx, changed)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.cmdCtx.Logger.Error("watcher error", "error", err)
		}
	}
}

// watchNewDir starts watching a directory created under a directory root.
func (s *watchSession) watchNewDir(watcher *fsnotify.Watcher, name string) {
	if len(s.dirs) == 0 {
		return
	}
	info, err := os.Stat(name)
	if err != nil || !info.IsDir() {
		return
	}
	if err := watchDirRecursive(watcher, name); err != nil {
		s.cmdCtx.Logger.Warn("failed to watch new directory", "dir", name, "error", err)
	}
}
