package core

// TestStatus describes the outcome (or progress) of a single test.
type TestStatus string

const (
	// TestStatusRunning marks a test that has started but not finished.
	TestStatusRunning TestStatus = "running"
	// TestStatusPassed marks a successfully completed test.
	TestStatusPassed TestStatus = "passed"
	// TestStatusFailed marks a failed test.
	TestStatusFailed TestStatus = "failed"
)

// TestSummary carries the descriptive metadata of the test currently driving
// the lifecycle. It is handed to OnBeforeTest/OnAfterTest hooks and consumed
// by the path-naming strategy; the manager never interprets it beyond passing
// it through.
type TestSummary struct {
	// Title is the short test name.
	Title string
	// FullName is the complete hierarchical name (suite > ... > title).
	FullName string
	// Status is the current outcome; TestStatusRunning until OnAfterTest.
	Status TestStatus
	// Invocation counts retries of the same test, starting at 1.
	Invocation int
}
