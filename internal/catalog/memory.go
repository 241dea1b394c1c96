package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/videoteca/backend/internal/media"
)

// MemoryStore keeps records in a map, for tests. It mirrors the uniqueness
// rules the Postgres schema enforces.
type MemoryStore struct {
	mutex   sync.Mutex
	records map[uuid.UUID]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]*Record)}
}

func cloneRecord(record *Record) *Record {
	clone := *record
	if record.Thumbnail != nil {
		thumb := *record.Thumbnail
		clone.Thumbnail = &thumb
	}
	if record.PublishedAt != nil {
		t := *record.PublishedAt
		clone.PublishedAt = &t
	}
	clone.Categories = append([]string(nil), record.Categories...)
	return &clone
}

func (s *MemoryStore) FindById(_ context.Context, id uuid.UUID) (*Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if record, ok := s.records[id]; ok {
		return cloneRecord(record), nil
	}

	return nil, nil
}

func (s *MemoryStore) FindByExternalId(_ context.Context, externalId string) (*Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, record := range s.records {
		if record.ExternalId != "" && record.ExternalId == externalId {
			return cloneRecord(record), nil
		}
	}

	return nil, nil
}

func (s *MemoryStore) FindByTitle(_ context.Context, title string) (*Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, record := range s.records {
		if record.Title == title && record.IsPublic {
			return cloneRecord(record), nil
		}
	}

	return nil, nil
}

func (s *MemoryStore) checkConflicts(record *Record) error {
	for _, other := range s.records {
		if other.Id == record.Id {
			continue
		}
		if record.SourceVariant == media.SourceKindYoutube && record.ExternalId != "" && other.ExternalId == record.ExternalId {
			return ErrDuplicateExternalId
		}
		if other.Title == record.Title {
			return ErrDuplicateTitle
		}
	}

	return nil
}

func (s *MemoryStore) Insert(_ context.Context, record *Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	if err := s.checkConflicts(record); err != nil {
		return err
	}

	s.records[record.Id] = cloneRecord(record)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, record *Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.records[record.Id]; !ok {
		return ErrRecordNotFound
	}

	if err := s.checkConflicts(record); err != nil {
		return err
	}

	s.records[record.Id] = cloneRecord(record)
	return nil
}

func (s *MemoryStore) matches(record *Record, params SearchParams) bool {
	if !record.IsPublic {
		return false
	}

	if params.SearchQuery != "" {
		query := strings.ToLower(params.SearchQuery)
		if !strings.Contains(strings.ToLower(record.Title), query) &&
			!strings.Contains(strings.ToLower(record.Description), query) {
			return false
		}
	}

	if len(params.Categories) > 0 {
		found := false
		for _, want := range params.Categories {
			for _, category := range record.Categories {
				if category == want {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func (s *MemoryStore) Search(_ context.Context, params SearchParams) ([]Record, int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if params.Page < 1 {
		params.Page = 1
	}

	var matched []Record
	for _, record := range s.records {
		if s.matches(record, params) {
			matched = append(matched, *cloneRecord(record))
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	offset := (params.Page - 1) * SearchPageSize
	if offset > total {
		offset = total
	}
	end := offset + SearchPageSize
	if end > total {
		end = total
	}

	return matched[offset:end], total, nil
}

func (s *MemoryStore) Highlighted(_ context.Context) ([]Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var matched []Record
	for _, record := range s.records {
		if record.Highlight && record.IsPublic {
			matched = append(matched, *cloneRecord(record))
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}

func (s *MemoryStore) IncrementViews(_ context.Context, title string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, record := range s.records {
		if record.Title == title {
			record.Views++
			return nil
		}
	}

	return ErrRecordNotFound
}
