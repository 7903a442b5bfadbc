package artifact

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/afs"
)

// File is a core.Artifact backed by a file at an afs-addressable location,
// typically a scratch recording still being written by a plugin. Save moves
// it to its prepared destination; Discard deletes it. Both are safe for
// concurrent use and Discard is idempotent.
type File struct {
	fs  afs.Service
	url string

	mu        sync.Mutex
	discarded bool
	saved     bool
}

// NewFile wraps the file at url. A nil fs defaults to afs.New().
func NewFile(fs afs.Service, url string) *File {
	if fs == nil {
		fs = afs.New()
	}
	return &File{fs: fs, url: url}
}

// URL returns the current location of the file.
func (f *File) URL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url
}

// Save moves the file to dest. Saving a discarded artifact returns
// ErrDiscarded.
func (f *File) Save(ctx context.Context, dest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.discarded {
		return ErrDiscarded
	}
	if err := f.fs.Move(ctx, f.url, dest); err != nil {
		return fmt.Errorf("failed to move artifact %s to %s: %w", f.url, dest, err)
	}
	f.url = dest
	f.saved = true
	return nil
}

// Discard deletes the file unless it was saved. Discarding twice, or
// discarding a file that no longer exists, is a no-op.
func (f *File) Discard(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.discarded || f.saved {
		return nil
	}
	f.discarded = true

	exists, err := f.fs.Exists(ctx, f.url)
	if err != nil {
		return fmt.Errorf("failed to check artifact %s: %w", f.url, err)
	}
	if !exists {
		return nil
	}
	if err := f.fs.Delete(ctx, f.url); err != nil {
		return fmt.Errorf("failed to delete artifact %s: %w", f.url, err)
	}
	return nil
}
