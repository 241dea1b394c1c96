package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/videoteca/backend/internal/blob"
	"github.com/videoteca/backend/internal/media"
)

// Record is the persisted catalog entity produced by ingestion.
//
// The source fields mirror the source variant: YoutubeURL for youtube
// submissions, UploadedFileRef for uploads. EmbedCode doubles as the
// user-supplied markup for embed submissions and the generated player
// markup for resolved youtube ones.
type Record struct {
	Id            uuid.UUID
	SourceVariant media.SourceKind

	YoutubeURL      string
	EmbedCode       string
	UploadedFileRef string

	// ExternalId is the canonical YouTube video id. Unique across all
	// youtube records; empty when URL extraction did not resolve.
	ExternalId string

	Title           string
	Description     string
	Author          string
	DurationDisplay string
	Thumbnail       *blob.Asset
	PublishedAt     *time.Time

	// IsNew is computed once at resolution time and never recomputed.
	IsNew bool

	IsPublic            bool
	Featured            bool
	Highlight           bool
	IsRestricted        bool
	VerificationMessage string
	Views               int
	Categories          []string
	CreatedAt           time.Time
}
