package ingest

import (
	"time"

	"github.com/videoteca/backend/internal/catalog"
)

const freshnessWindow = 30 * 24 * time.Hour

// isNew reports whether a publish date falls inside the freshness window.
// The boundary is inclusive: exactly 30 days old still counts as new.
func isNew(publishedAt, now time.Time) bool {
	return now.Sub(publishedAt) <= freshnessWindow
}

// assembleRecord merges resolver output into the record. User-supplied
// title, description and author always win; the resolver only fills gaps.
// System-managed fields (external id, duration, publish date, embed markup,
// freshness, thumbnail) come from the resolver when resolution succeeded
// and stay untouched otherwise. Pure function, no I/O.
func assembleRecord(record catalog.Record, res resolution, now time.Time) catalog.Record {
	if res.meta != nil {
		meta := res.meta
		record.ExternalId = res.externalId
		record.Title = firstNonEmpty(record.Title, meta.Title)
		record.Description = firstNonEmpty(record.Description, meta.Description)
		record.Author = firstNonEmpty(record.Author, meta.Author)
		record.DurationDisplay = meta.DurationDisplay
		record.EmbedCode = firstNonEmpty(meta.EmbedMarkup, record.EmbedCode)

		publishedAt := meta.PublishedAt
		record.PublishedAt = &publishedAt
		record.IsNew = isNew(meta.PublishedAt, now)
	}

	if res.thumbnail != nil {
		record.Thumbnail = res.thumbnail
	}

	return record
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
