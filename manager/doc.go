// Package manager contains the lifecycle orchestration core of CaptureMesh.
//
// The Manager instantiates every plugin once from a factory map, fans
// lifecycle events out to all of them concurrently with per-plugin failure
// isolation, implements the core.ControlAPI capability façade (run context
// accessors, artifact path preparation, artifact tracking, idle scheduling),
// and runs the one-shot teardown sequence that stops plugins and discards
// whatever artifacts are still tracked.
//
// A plugin failure never aborts sibling plugins and never fails the test
// run: it is logged with the plugin's name and the hook at which it occurred,
// then swallowed. The only errors that cross the manager/plugin boundary are
// precondition errors from run-context accessors and I/O errors from
// directory creation.
package manager
