// Package output renders parse results for the terminal, for pipes and for
// machine consumers.
package output

import (
	"fmt"
	"strings"
)

// Mode selects how results are written.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"     // text on a terminal, markdown otherwise
	ModeText     Mode = "text"     // styled, human readable
	ModeJSON     Mode = "json"     // indented JSON
	ModeYAML     Mode = "yaml"     // YAML documents
	ModeMarkdown Mode = "markdown" // markdown tables
)

// ParseMode converts a config or flag value into a Mode. The empty string
// means ModeAuto and "md" is accepted for markdown.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "text":
		return ModeText, nil
	case "json":
		return ModeJSON, nil
	case "yaml", "yml":
		return ModeYAML, nil
	case "markdown", "md":
		return ModeMarkdown, nil
	}
	return "", fmt.Errorf("unknown output mode %q", s)
}

// Structured reports whether the mode is meant for machines.
func (m Mode) Structured() bool {
	return m == ModeJSON || m == ModeYAML
}
