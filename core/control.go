package core

import "context"

// ControlAPI is the narrow capability façade plugins receive from their
// factory. It exposes the current run context, artifact path preparation,
// artifact tracking and deferred-work scheduling — and nothing else, keeping
// plugins decoupled from the manager's internals.
//
// Accessor methods fail with ErrRunContextUnavailable until the first
// launchApp event binds the run context; callers must not assume defaults.
type ControlAPI interface {
	// DeviceID returns the device identifier from the most recent launch.
	DeviceID() (string, error)

	// BundleID returns the application bundle identifier from the most
	// recent launch.
	BundleID() (string, error)

	// PID returns the application process id from the most recent launch.
	PID() (int, error)

	// PreparePathForArtifact resolves the on-disk destination for a named
	// artifact of the given test (nil for suite-scoped artifacts) and ensures
	// the parent directory exists. Directory-creation failures are returned
	// to the caller; the plugin needs to know its write target is unusable.
	PreparePathForArtifact(ctx context.Context, name string, test *TestSummary) (string, error)

	// TrackArtifact registers a live artifact. Anything still tracked when
	// the run terminates is discarded by the teardown sequence.
	TrackArtifact(a Artifact)

	// UntrackArtifact removes an artifact from the live set. Untracking an
	// artifact that was never tracked is a no-op.
	UntrackArtifact(a Artifact)

	// RequestIdleCallback schedules deferred work outside the critical path
	// of lifecycle events. Tasks run strictly in submission order, one at a
	// time while the run is active; once termination has begun they drain as
	// a batch so the process can exit.
	RequestIdleCallback(task IdleTask)
}

// IdleTask is a unit of deferred work requested by a plugin. Caller names the
// requesting plugin so failures can be attributed in logs.
type IdleTask struct {
	Caller string
	Run    func(ctx context.Context) error
}
