package triage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hupe1980/capturemesh/core"
	"github.com/hupe1980/capturemesh/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeControl is a minimal ControlAPI that executes idle tasks inline and
// hands out paths under a temp dir.
type fakeControl struct {
	root     string
	deviceID string
	bundleID string

	mu    sync.Mutex
	tasks []core.IdleTask
}

var _ core.ControlAPI = (*fakeControl)(nil)

func (f *fakeControl) DeviceID() (string, error) {
	if f.deviceID == "" {
		return "", core.ErrRunContextUnavailable
	}
	return f.deviceID, nil
}

func (f *fakeControl) BundleID() (string, error) {
	if f.bundleID == "" {
		return "", core.ErrRunContextUnavailable
	}
	return f.bundleID, nil
}

func (f *fakeControl) PID() (int, error) { return 0, core.ErrRunContextUnavailable }

func (f *fakeControl) PreparePathForArtifact(_ context.Context, name string, _ *core.TestSummary) (string, error) {
	return filepath.Join(f.root, name), nil
}

func (f *fakeControl) TrackArtifact(core.Artifact)   {}
func (f *fakeControl) UntrackArtifact(core.Artifact) {}

func (f *fakeControl) RequestIdleCallback(task core.IdleTask) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
}

func (f *fakeControl) runTasks(t *testing.T) {
	t.Helper()
	f.mu.Lock()
	tasks := f.tasks
	f.tasks = nil
	f.mu.Unlock()
	for _, task := range tasks {
		require.NoError(t, task.Run(context.Background()))
	}
}

func runTest(t *testing.T, p core.Plugin, fullName string, status core.TestStatus) {
	t.Helper()
	ctx := context.Background()
	summary := &core.TestSummary{Title: fullName, FullName: fullName, Status: core.TestStatusRunning}
	require.NoError(t, p.OnBeforeTest(ctx, summary))
	summary.Status = status
	require.NoError(t, p.OnAfterTest(ctx, summary))
}

func TestPlugin_RecordsResults(t *testing.T) {
	api := &fakeControl{root: t.TempDir()}
	p := NewFactory()(api, core.CaptureModeAll).(*Plugin)

	runTest(t, p, "Login > logs in", core.TestStatusPassed)
	runTest(t, p, "Login > logs out", core.TestStatusFailed)

	results := p.Results()
	require.Len(t, results, 2)
	assert.Equal(t, core.TestStatusPassed, results[0].Status)
	assert.Equal(t, "Login > logs out", results[1].FullName)
	assert.Equal(t, core.TestStatusFailed, results[1].Status)
}

func TestPlugin_WritesSummaryOnAfterAll(t *testing.T) {
	api := &fakeControl{root: t.TempDir(), deviceID: "emulator-5554", bundleID: "com.example.app"}
	gen := &report.MockGenerator{Summary: "all good"}
	p := NewFactory(func(o *Options) {
		o.Generator = gen
		o.ArtifactName = "summary.md"
	})(api, core.CaptureModeAll).(*Plugin)

	runTest(t, p, "Smoke > boots", core.TestStatusPassed)
	require.NoError(t, p.OnAfterAll(context.Background()))

	// summary is written from the idle task, not inline
	assert.NoFileExists(t, filepath.Join(api.root, "summary.md"))

	api.runTasks(t)

	data, err := os.ReadFile(filepath.Join(api.root, "summary.md"))
	require.NoError(t, err)
	assert.Equal(t, "all good", string(data))

	require.Len(t, gen.Calls, 1)
	assert.Equal(t, "emulator-5554", gen.Calls[0].DeviceID)
	assert.Equal(t, "com.example.app", gen.Calls[0].BundleID)
	require.Len(t, gen.Calls[0].Results, 1)
	assert.Equal(t, "Smoke > boots", gen.Calls[0].Results[0].FullName)
}

func TestPlugin_AfterTestWithoutBeforeTest(t *testing.T) {
	api := &fakeControl{root: t.TempDir()}
	p := NewFactory()(api, core.CaptureModeAll).(*Plugin)

	require.NoError(t, p.OnAfterTest(context.Background(), &core.TestSummary{FullName: "orphan"}))
	assert.Empty(t, p.Results())
}

func TestPlugin_DefaultGeneratorProducesMarkdown(t *testing.T) {
	api := &fakeControl{root: t.TempDir()}
	p := NewFactory()(api, core.CaptureModeAll).(*Plugin)

	runTest(t, p, "Feed > shows feed", core.TestStatusFailed)
	require.NoError(t, p.OnAfterAll(context.Background()))
	api.runTasks(t)

	data, err := os.ReadFile(filepath.Join(api.root, "triage.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Feed > shows feed")
	assert.Contains(t, string(data), "## Failures")
}
