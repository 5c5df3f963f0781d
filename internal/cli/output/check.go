package output

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// CheckResult is the outcome of validating one file.
type CheckResult struct {
	Path       string          `json:"path" yaml:"path"`
	OK         bool            `json:"ok" yaml:"ok"`
	Statements int             `json:"statements" yaml:"statements"`
	Diagnostic *DiagnosticView `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
}

// CheckSummary wraps check results for structured output.
type CheckSummary struct {
	Files  []CheckResult `json:"files" yaml:"files"`
	Failed int           `json:"failed" yaml:"failed"`
}

// NewCheckSummary counts the failures in results.
func NewCheckSummary(results []CheckResult) CheckSummary {
	s := CheckSummary{Files: results}
	if s.Files == nil {
		s.Files = []CheckResult{}
	}
	for _, res := range results {
		if !res.OK {
			s.Failed++
		}
	}
	return s
}

// CheckResults renders the outcome of a check run.
func (r *Renderer) CheckResults(results []CheckResult) error {
	summary := NewCheckSummary(results)

	switch r.EffectiveMode() {
	case ModeJSON, ModeYAML:
		return r.Structured(summary)
	case ModeMarkdown:
		t := table.NewWriter()
		t.AppendHeader(table.Row{"File", "Status", "Statements", "Diagnostic"})
		for _, res := range results {
			status, diag := "ok", ""
			if !res.OK {
				status = "failed"
				diag = diagnosticText(res)
			}
			t.AppendRow(table.Row{res.Path, status, res.Statements, diag})
		}
		r.Println(t.RenderMarkdown())
		r.Println("")
	default:
		styles := r.styles
		for _, res := range results {
			if res.OK {
				r.Printf("%s %s %s\n", styles.StatusSuccess.String(), res.Path,
					styles.Muted.Render("("+plural(res.Statements, "statement")+")"))
				continue
			}
			r.Printf("%s %s\n", styles.StatusFailed.String(), styles.Error.Render(diagnosticText(res)))
		}
	}

	msg := fmt.Sprintf("%s checked, %d failed", plural(len(results), "file"), summary.Failed)
	if summary.Failed > 0 {
		r.Warning(msg)
	} else {
		r.Success(msg)
	}
	return nil
}

func diagnosticText(res CheckResult) string {
	if res.Diagnostic == nil {
		return res.Path
	}
	d := res.Diagnostic
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", res.Path, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", res.Path, d.Line, d.Column, d.Message)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
