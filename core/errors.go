package core

import "fmt"

var (
	// ErrRunContextUnavailable is returned by ControlAPI accessors when they
	// are used before the first launchApp event bound the run context.
	ErrRunContextUnavailable = fmt.Errorf("capture api used before app launch bound the run context")
)
