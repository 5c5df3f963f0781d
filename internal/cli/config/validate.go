package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/minisql/internal/cli/output"
)

// OutputModes lists the canonical values of the output setting. The
// renderer also accepts the aliases "yml" and "md".
var OutputModes = []string{"auto", "text", "json", "yaml", "markdown"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.Output); err != nil {
		return fmt.Errorf("invalid output mode %q (want one of %s)", c.Output, strings.Join(OutputModes, ", "))
	}

	if c.Check != nil {
		if c.Check.Jobs < 0 {
			return fmt.Errorf("check.jobs must not be negative, got %d", c.Check.Jobs)
		}
		for _, ext := range c.Check.Extensions {
			if !strings.HasPrefix(ext, ".") {
				return fmt.Errorf("check.extensions: %q must start with a dot", ext)
			}
		}
	}

	if c.Watch != nil && c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMS)
	}

	return nil
}
