package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrDuplicateExternalId = errors.New("Video with this id already exists in the database.")
var ErrDuplicateTitle = errors.New("Video with this title already exists in the database.")
var ErrRecordNotFound = errors.New("Video not found.")

const SearchPageSize = 20

type SearchParams struct {
	// Page is 1-based.
	Page        int
	SearchQuery string
	Categories  []string
}

// Store is the catalog persistence surface. Lookups return (nil, nil) when
// no record matches; Insert and Update surface duplicate-key conflicts as
// the sentinel errors above.
type Store interface {
	FindById(ctx context.Context, id uuid.UUID) (*Record, error)
	FindByExternalId(ctx context.Context, externalId string) (*Record, error)
	// FindByTitle only matches public records.
	FindByTitle(ctx context.Context, title string) (*Record, error)
	Insert(ctx context.Context, record *Record) error
	Update(ctx context.Context, record *Record) error

	Search(ctx context.Context, params SearchParams) (records []Record, total int, err error)
	Highlighted(ctx context.Context) ([]Record, error)
	IncrementViews(ctx context.Context, title string) error
}
