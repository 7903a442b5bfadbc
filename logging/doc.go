// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer CaptureMeshLogger with contextual
// helpers (run id, component) and domain specific helpers for plugin hooks
// and idle tasks.
package logging
