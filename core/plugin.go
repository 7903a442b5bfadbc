package core

import "context"

// Plugin is the fixed interface every artifact-capture plugin implements.
//
// Plugins are the pluggable units of CaptureMesh: screenshot takers, video
// recorders, log collectors and similar instrumentation. The manager fans
// each lifecycle event out to every registered plugin concurrently and
// isolates failures, so implementations never have to worry about breaking
// sibling plugins or the test run itself.
//
// Each method corresponds to one lifecycle event raised by the external
// device/test-runner. Embed plugin.Base to inherit no-op implementations for
// the hooks a plugin does not care about.
//
// Implementations must:
//   - Return quickly or respect context cancellation in long operations
//   - Use the ControlAPI received at construction for paths, artifact
//     tracking and deferred (idle) work
//   - Treat hook errors as diagnostics: they are logged, never retried
type Plugin interface {
	// Name identifies the plugin in failure reports and logs.
	Name() string

	// OnBeforeAll is raised once before the first test of the suite.
	OnBeforeAll(ctx context.Context) error

	// OnBeforeTest is raised before each test starts.
	OnBeforeTest(ctx context.Context, test *TestSummary) error

	// OnBeforeResetDevice is raised just before the device is reset.
	OnBeforeResetDevice(ctx context.Context) error

	// OnResetDevice is raised after the device finished resetting.
	OnResetDevice(ctx context.Context) error

	// OnRelaunchApp is raised on every app launch after the first, with the
	// freshly bound run context. The first launch only binds the context and
	// is never fanned out.
	OnRelaunchApp(ctx context.Context, run RunContext) error

	// OnAfterTest is raised after each test finished, with its final status.
	OnAfterTest(ctx context.Context, test *TestSummary) error

	// OnAfterAll is raised once after the last test. By the time the
	// manager's OnAfterAll returns, all idle work requested so far has been
	// drained.
	OnAfterAll(ctx context.Context) error

	// OnTerminate is raised exactly once during teardown.
	OnTerminate(ctx context.Context) error
}

// CaptureMode tells a plugin when to keep what it captured.
type CaptureMode string

const (
	// CaptureModeNone keeps nothing; plugins configured with it are normally
	// not registered at all.
	CaptureModeNone CaptureMode = "none"
	// CaptureModeFailing keeps artifacts of failing tests only.
	CaptureModeFailing CaptureMode = "failing"
	// CaptureModeAll keeps artifacts of every test.
	CaptureModeAll CaptureMode = "all"
)

// ShouldKeep reports whether an artifact of a test with the given final
// status is worth saving under this mode.
func (m CaptureMode) ShouldKeep(status TestStatus) bool {
	switch m {
	case CaptureModeAll:
		return true
	case CaptureModeFailing:
		return status == TestStatusFailed
	default:
		return false
	}
}

// PluginFactory constructs a plugin instance bound to the capability façade
// and the capture mode configured for it. Factories run exactly once per run,
// at manager construction; the resulting plugin set is fixed for the lifetime
// of the run.
type PluginFactory func(api ControlAPI, mode CaptureMode) Plugin
