package artifact

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// Buffer is a core.Artifact assembled in memory: screenshots, log excerpts,
// generated reports. It implements io.Writer; Save uploads the accumulated
// bytes to the prepared destination and Discard drops them.
type Buffer struct {
	fs afs.Service

	mu        sync.Mutex
	data      []byte
	discarded bool
}

// NewBuffer creates an empty buffer artifact. A nil fs defaults to afs.New().
func NewBuffer(fs afs.Service) *Buffer {
	if fs == nil {
		fs = afs.New()
	}
	return &Buffer{fs: fs}
}

// Write appends p to the buffered capture data.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.discarded {
		return 0, ErrDiscarded
	}
	b.data = append(b.data, p...)
	return len(p), nil
}

// Len reports the number of buffered bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Save uploads the buffered bytes to dest. Saving a discarded buffer returns
// ErrDiscarded.
func (b *Buffer) Save(ctx context.Context, dest string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.discarded {
		return ErrDiscarded
	}
	if err := b.fs.Upload(ctx, dest, file.DefaultFileOsMode, bytes.NewReader(b.data)); err != nil {
		return fmt.Errorf("failed to upload artifact to %s: %w", dest, err)
	}
	return nil
}

// Discard drops the buffered bytes. Idempotent.
func (b *Buffer) Discard(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.discarded = true
	b.data = nil
	return nil
}
