package core

// PathStrategy is the artifact path-naming policy, an external collaborator
// of the manager. Given an artifact name and the current test's summary (nil
// for suite-scoped artifacts) it returns the destination path. The manager,
// not the strategy, ensures the parent directory exists.
type PathStrategy interface {
	PathForArtifact(name string, test *TestSummary) string
}
