// Package artifact provides ready-made core.Artifact implementations: File
// for resources already on disk (or any afs-addressable storage) and Buffer
// for capture data assembled in memory. Plugins are free to bring their own
// implementations; the manager only ever calls Discard.
package artifact
