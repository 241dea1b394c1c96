package blob

import (
	"context"
	"io"
	"path"
	"sync"
)

type MemoryObject struct {
	Data        []byte
	ContentType string
}

// MemoryStore keeps assets in a map, for tests.
type MemoryStore struct {
	mutex   sync.Mutex
	Objects map[string]MemoryObject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Objects: make(map[string]MemoryObject)}
}

func (s *MemoryStore) Put(ctx context.Context, r io.Reader, filename, contentType string) (*Asset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	name := path.Base(filename)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Objects[name] = MemoryObject{Data: data, ContentType: contentType}

	return &Asset{
		Key:         name,
		URL:         "memory://" + name,
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

func (s *MemoryStore) Get(name string, callback func(MemoryObject, bool)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	obj, ok := s.Objects[name]
	callback(obj, ok)
}
