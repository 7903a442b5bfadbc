package manager

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hupe1980/capturemesh/core"
	"github.com/viant/afs/file"
)

// DeviceID returns the device identifier bound by the most recent launch.
func (m *Manager) DeviceID() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.run == nil {
		return "", core.ErrRunContextUnavailable
	}
	return m.run.DeviceID, nil
}

// BundleID returns the bundle identifier bound by the most recent launch.
func (m *Manager) BundleID() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.run == nil {
		return "", core.ErrRunContextUnavailable
	}
	return m.run.BundleID, nil
}

// PID returns the application process id bound by the most recent launch.
func (m *Manager) PID() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.run == nil {
		return 0, core.ErrRunContextUnavailable
	}
	return m.run.PID, nil
}

// PreparePathForArtifact resolves the destination through the path strategy
// and ensures the parent directory exists. I/O failures are wrapped and
// returned to the calling plugin, never swallowed.
func (m *Manager) PreparePathForArtifact(ctx context.Context, name string, test *core.TestSummary) (string, error) {
	dest := m.strategy.PathForArtifact(name, test)

	dir := filepath.Dir(dest)
	exists, err := m.fs.Exists(ctx, dir)
	if err != nil {
		return "", fmt.Errorf("failed to check artifact directory %s: %w", dir, err)
	}
	if !exists {
		if err := m.fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
			return "", fmt.Errorf("failed to create artifact directory %s: %w", dir, err)
		}
	}

	return dest, nil
}

// TrackArtifact adds a to the live set discarded at teardown.
func (m *Manager) TrackArtifact(a core.Artifact) {
	if a == nil {
		return
	}
	m.mu.Lock()
	m.artifacts[a] = struct{}{}
	m.mu.Unlock()
}

// UntrackArtifact removes a from the live set. Removing an artifact that was
// never tracked is a no-op.
func (m *Manager) UntrackArtifact(a core.Artifact) {
	if a == nil {
		return
	}
	m.mu.Lock()
	delete(m.artifacts, a)
	m.mu.Unlock()
}

// TrackedCount reports how many artifacts are currently live.
func (m *Manager) TrackedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.artifacts)
}

// RequestIdleCallback appends the task to the idle chain. While the run is
// active each request extends the chain by a single-task drain; once
// OnTerminate has marked the run terminated, each request flushes the whole
// queued batch.
func (m *Manager) RequestIdleCallback(task core.IdleTask) {
	m.idle.Enqueue(task)
}

// WaitIdle blocks until all idle work requested so far has drained. Exposed
// for callers (and tests) that need the OnAfterAll guarantee without
// dispatching the hook.
func (m *Manager) WaitIdle(ctx context.Context) error {
	return m.idle.Wait(ctx)
}
