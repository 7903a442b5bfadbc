// Package report turns the outcome of a test run into a human-readable
// triage summary. The offline TextGenerator renders a plain markdown digest;
// the anthropic and openai subpackages generate a narrative summary with an
// LLM instead.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/capturemesh/core"
)

// TestResult is the per-test slice of a run report.
type TestResult struct {
	Title    string
	FullName string
	Status   core.TestStatus
}

// RunReport is everything a generator gets to work with: the run identity
// and the ordered test results.
type RunReport struct {
	RunID    string
	DeviceID string
	BundleID string
	Results  []TestResult
}

// Failed returns the failing subset of the results, in order.
func (r RunReport) Failed() []TestResult {
	var failed []TestResult
	for _, res := range r.Results {
		if res.Status == core.TestStatusFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Generator produces a triage summary for a finished run.
type Generator interface {
	// Generate returns the summary text for the report.
	Generate(ctx context.Context, report RunReport) (string, error)
}

// TextGenerator renders a markdown digest without any external service.
// It is the default generator.
type TextGenerator struct{}

// NewTextGenerator creates the offline markdown generator.
func NewTextGenerator() *TextGenerator {
	return &TextGenerator{}
}

// Generate implements Generator.
func (g *TextGenerator) Generate(_ context.Context, report RunReport) (string, error) {
	var sb strings.Builder

	if report.RunID != "" {
		fmt.Fprintf(&sb, "# Test Run %s\n\n", report.RunID)
	} else {
		sb.WriteString("# Test Run\n\n")
	}
	if report.DeviceID != "" {
		fmt.Fprintf(&sb, "- Device: %s\n", report.DeviceID)
	}
	if report.BundleID != "" {
		fmt.Fprintf(&sb, "- App: %s\n", report.BundleID)
	}
	failed := report.Failed()
	fmt.Fprintf(&sb, "- Tests: %d total, %d failed\n\n", len(report.Results), len(failed))

	if len(failed) > 0 {
		sb.WriteString("## Failures\n\n")
		for _, res := range failed {
			fmt.Fprintf(&sb, "- %s\n", res.FullName)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Results\n\n")
	for _, res := range report.Results {
		fmt.Fprintf(&sb, "- [%s] %s\n", res.Status, res.FullName)
	}

	return sb.String(), nil
}

// MockGenerator returns a fixed summary or error. Test helper.
type MockGenerator struct {
	Summary string
	Err     error

	// Calls records every report passed to Generate.
	Calls []RunReport
}

// Generate implements Generator.
func (g *MockGenerator) Generate(_ context.Context, report RunReport) (string, error) {
	g.Calls = append(g.Calls, report)
	if g.Err != nil {
		return "", g.Err
	}
	return g.Summary, nil
}

// Prompt renders the report as the user prompt shared by the LLM-backed
// generators.
func Prompt(report RunReport) string {
	var sb strings.Builder

	if report.RunID != "" {
		fmt.Fprintf(&sb, "Run: %s\n", report.RunID)
	}
	if report.DeviceID != "" {
		fmt.Fprintf(&sb, "Device: %s\n", report.DeviceID)
	}
	if report.BundleID != "" {
		fmt.Fprintf(&sb, "App: %s\n", report.BundleID)
	}
	sb.WriteString("Results:\n")
	for _, res := range report.Results {
		fmt.Fprintf(&sb, "- %s: %s\n", res.Status, res.FullName)
	}

	return sb.String()
}

// SystemPrompt is the instruction shared by the LLM-backed generators.
const SystemPrompt = "You are a test-run triage assistant. Given the results of a mobile " +
	"test run, write a short summary: overall health, which tests failed, and " +
	"likely groupings of related failures. Be concise and factual."
