package core

import "context"

// Artifact is any captured resource with an open lifecycle: a temp file being
// written by a video recorder, a buffered screenshot, a log tail. The manager
// only needs to know how to discard one; everything else (saving, naming,
// format) is the owning plugin's business.
//
// Every artifact passed to ControlAPI.TrackArtifact must eventually be
// untracked by its owner or it will be discarded exactly once at teardown.
type Artifact interface {
	Discard(ctx context.Context) error
}
