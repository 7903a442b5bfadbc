// Package naming provides the default artifact path strategy: artifacts of a
// test land in a per-test subdirectory of the configured root, prefixed with
// the test's ordinal in the run ("1. suite name test name/screenshot.png");
// suite-scoped artifacts (no test) land in the root itself.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hupe1980/capturemesh/core"
)

// Strategy implements core.PathStrategy. Paths are deterministic for a given
// sequence of tests: the first distinct test seen gets ordinal 1, the second
// ordinal 2, and so on; retries of the same test reuse its ordinal.
type Strategy struct {
	root string

	mu       sync.Mutex
	ordinals map[string]int
}

var _ core.PathStrategy = (*Strategy)(nil)

// New creates a strategy rooted at dir.
func New(dir string) *Strategy {
	return &Strategy{root: dir, ordinals: make(map[string]int)}
}

// Root returns the configured artifacts root directory.
func (s *Strategy) Root() string { return s.root }

// PathForArtifact resolves the destination for a named artifact of the given
// test, or of the whole suite when test is nil.
func (s *Strategy) PathForArtifact(name string, test *core.TestSummary) string {
	if test == nil {
		return filepath.Join(s.root, sanitize(name))
	}

	s.mu.Lock()
	ord, ok := s.ordinals[test.FullName]
	if !ok {
		ord = len(s.ordinals) + 1
		s.ordinals[test.FullName] = ord
	}
	s.mu.Unlock()

	dir := fmt.Sprintf("%d. %s", ord, sanitize(test.FullName))
	return filepath.Join(s.root, dir, sanitize(name))
}

// sanitize replaces characters that are unsafe in file names. The separator
// set covers Windows-reserved characters as well so artifact trees can be
// copied across platforms.
func sanitize(name string) string {
	const unsafe = `/\:*?"<>|`
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafe, r) {
			return '_'
		}
		return r
	}, name)
}
