package artifact

import "fmt"

var (
	// ErrDiscarded is returned when an artifact is saved after it has been
	// discarded.
	ErrDiscarded = fmt.Errorf("artifact already discarded")
)
