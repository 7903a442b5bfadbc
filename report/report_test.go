package report

import (
	"context"
	"testing"

	"github.com/hupe1980/capturemesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ Generator = (*TextGenerator)(nil)
	_ Generator = (*MockGenerator)(nil)
)

func sampleReport() RunReport {
	return RunReport{
		RunID:    "run-1",
		DeviceID: "emulator-5554",
		BundleID: "com.example.app",
		Results: []TestResult{
			{Title: "logs in", FullName: "Login > logs in", Status: core.TestStatusPassed},
			{Title: "logs out", FullName: "Login > logs out", Status: core.TestStatusFailed},
			{Title: "shows feed", FullName: "Feed > shows feed", Status: core.TestStatusFailed},
		},
	}
}

func TestRunReport_Failed(t *testing.T) {
	failed := sampleReport().Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, "Login > logs out", failed[0].FullName)
	assert.Equal(t, "Feed > shows feed", failed[1].FullName)
}

func TestTextGenerator_Generate(t *testing.T) {
	out, err := NewTextGenerator().Generate(context.Background(), sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, "# Test Run run-1")
	assert.Contains(t, out, "Device: emulator-5554")
	assert.Contains(t, out, "3 total, 2 failed")
	assert.Contains(t, out, "## Failures")
	assert.Contains(t, out, "- Feed > shows feed")
	assert.Contains(t, out, "[passed] Login > logs in")
}

func TestTextGenerator_NoFailures(t *testing.T) {
	r := RunReport{
		RunID: "run-2",
		Results: []TestResult{
			{FullName: "Smoke > boots", Status: core.TestStatusPassed},
		},
	}

	out, err := NewTextGenerator().Generate(context.Background(), r)
	require.NoError(t, err)
	assert.NotContains(t, out, "## Failures")
	assert.Contains(t, out, "1 total, 0 failed")
}

func TestPrompt_IncludesResults(t *testing.T) {
	prompt := Prompt(sampleReport())
	assert.Contains(t, prompt, "Run: run-1")
	assert.Contains(t, prompt, "failed: Login > logs out")
}
