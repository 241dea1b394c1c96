package blob

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
)

// FilesystemStore writes assets under a local directory. Meant for
// development setups without an S3 bucket.
type FilesystemStore struct {
	dir string
}

func NewFilesystemStore(dir string) *FilesystemStore {
	return &FilesystemStore{dir: dir}
}

func (s *FilesystemStore) Put(ctx context.Context, r io.Reader, filename, contentType string) (*Asset, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, err
	}

	name := path.Base(filename)
	file, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}

	size, err := io.Copy(file, r)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(file.Name())
		return nil, err
	}

	return &Asset{
		Key:         name,
		URL:         "/" + path.Join(thumbnailPrefix, name),
		Size:        size,
		ContentType: contentType,
	}, nil
}
