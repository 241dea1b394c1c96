package blob

import (
	"context"
	"io"
)

// Asset describes a stored binary artifact. Catalog records reference
// assets; the store owns them. Orphaned assets are not collected here.
type Asset struct {
	Key         string
	URL         string
	Size        int64
	ContentType string
}

// Store persists binary streams. Put consumes the reader as it arrives and
// must not buffer the whole payload in memory.
type Store interface {
	Put(ctx context.Context, r io.Reader, filename, contentType string) (*Asset, error)
}
