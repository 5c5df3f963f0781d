// Package config provides configuration management for the minisql CLI.
//
// Values are layered from defaults, a minisql.yaml file, MINISQL_ environment
// variables and command-line flags, in increasing order of precedence.
package config

// Default values applied before any other source is loaded.
const (
	DefaultOutput     = "auto"
	DefaultPrompt     = "minisql> "
	DefaultDebounceMS = 100
)

// DefaultExtensions are the file extensions check and watch pick up when
// walking a directory.
var DefaultExtensions = []string{".sql"}

// Config holds all CLI configuration options.
type Config struct {
	Output  string       `koanf:"output"`
	Verbose bool         `koanf:"verbose"`
	NoColor bool         `koanf:"no_color"`
	REPL    *REPLConfig  `koanf:"repl"`
	Check   *CheckConfig `koanf:"check"`
	Watch   *WatchConfig `koanf:"watch"`
}

// REPLConfig configures the interactive shell.
type REPLConfig struct {
	Prompt      string `koanf:"prompt"`
	HistoryFile string `koanf:"history_file"`
}

// CheckConfig configures batch validation.
type CheckConfig struct {
	Jobs       int      `koanf:"jobs"` // 0 means GOMAXPROCS
	Extensions []string `koanf:"extensions"`
}

// WatchConfig configures the file watcher.
type WatchConfig struct {
	DebounceMS int `koanf:"debounce_ms"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Output: DefaultOutput,
		REPL:   &REPLConfig{Prompt: DefaultPrompt},
		Check: &CheckConfig{
			Extensions: append([]string(nil), DefaultExtensions...),
		},
		Watch: &WatchConfig{DebounceMS: DefaultDebounceMS},
	}
}

// GetREPLConfig returns the REPL config with defaults applied for unset values.
func (c *Config) GetREPLConfig() *REPLConfig {
	if c.REPL == nil {
		return &REPLConfig{Prompt: DefaultPrompt}
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = DefaultPrompt
	}
	return c.REPL
}

// GetCheckConfig returns the check config with defaults applied for unset values.
func (c *Config) GetCheckConfig() *CheckConfig {
	if c.Check == nil {
		return &CheckConfig{Extensions: append([]string(nil), DefaultExtensions...)}
	}
	if len(c.Check.Extensions) == 0 {
		c.Check.Extensions = append([]string(nil), DefaultExtensions...)
	}
	return c.Check
}

// GetWatchConfig returns the watch config with defaults applied for unset values.
func (c *Config) GetWatchConfig() *WatchConfig {
	if c.Watch == nil {
		return &WatchConfig{DebounceMS: DefaultDebounceMS}
	}
	return c.Watch
}
