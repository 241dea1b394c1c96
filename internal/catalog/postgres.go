package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/videoteca/backend/internal/blob"
	"github.com/videoteca/backend/internal/db"
	"github.com/videoteca/backend/internal/media"
)

const videoColumns = `id, source_variant, youtube_url, embed_code, uploaded_file_ref, external_id,
	title, description, author, duration,
	thumbnail_key, thumbnail_url, thumbnail_size, thumbnail_content_type,
	published_at, is_new, is_public, featured, highlight, is_restricted,
	verification_message, views, categories, created_at`

// PostgresStore persists catalog records in the videos table. The partial
// unique index on external_id is the authoritative duplicate guard; this
// store only translates its violations into sentinel errors.
type PostgresStore struct {
	database *sql.DB
}

func NewPostgresStore(database *sql.DB) *PostgresStore {
	return &PostgresStore{database: database}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var record Record
	var sourceVariant string
	var youtubeURL, embedCode, uploadedFileRef, externalId sql.NullString
	var thumbKey, thumbURL, thumbContentType sql.NullString
	var thumbSize sql.NullInt64
	var publishedAt sql.NullTime
	var categories pq.StringArray

	err := row.Scan(&record.Id, &sourceVariant, &youtubeURL, &embedCode, &uploadedFileRef, &externalId,
		&record.Title, &record.Description, &record.Author, &record.DurationDisplay,
		&thumbKey, &thumbURL, &thumbSize, &thumbContentType,
		&publishedAt, &record.IsNew, &record.IsPublic, &record.Featured, &record.Highlight, &record.IsRestricted,
		&record.VerificationMessage, &record.Views, &categories, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	record.SourceVariant = media.SourceKind(sourceVariant)
	record.YoutubeURL = youtubeURL.String
	record.EmbedCode = embedCode.String
	record.UploadedFileRef = uploadedFileRef.String
	record.ExternalId = externalId.String
	record.Categories = categories

	if thumbKey.Valid {
		record.Thumbnail = &blob.Asset{
			Key:         thumbKey.String,
			URL:         thumbURL.String,
			Size:        thumbSize.Int64,
			ContentType: thumbContentType.String,
		}
	}

	if publishedAt.Valid {
		t := publishedAt.Time
		record.PublishedAt = &t
	}

	return &record, nil
}

func (s *PostgresStore) findOne(ctx context.Context, where string, arg any) (*Record, error) {
	record, err := scanRecord(s.database.QueryRowContext(ctx,
		"SELECT "+videoColumns+" FROM videos WHERE "+where, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (s *PostgresStore) FindById(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.findOne(ctx, "id = $1", id)
}

func (s *PostgresStore) FindByExternalId(ctx context.Context, externalId string) (*Record, error) {
	return s.findOne(ctx, "external_id = $1", externalId)
}

func (s *PostgresStore) FindByTitle(ctx context.Context, title string) (*Record, error) {
	return s.findOne(ctx, "title = $1 AND is_public", title)
}

func mapUniqueViolation(err error) error {
	if db.IsUniqueViolation(err, "videos_external_id_key") {
		return ErrDuplicateExternalId
	}
	if db.IsUniqueViolation(err, "videos_title_key") {
		return ErrDuplicateTitle
	}

	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *PostgresStore) insertArgs(record *Record) []any {
	var thumbKey, thumbURL, thumbContentType sql.NullString
	var thumbSize sql.NullInt64
	if record.Thumbnail != nil {
		thumbKey = nullString(record.Thumbnail.Key)
		thumbURL = nullString(record.Thumbnail.URL)
		thumbSize = sql.NullInt64{Int64: record.Thumbnail.Size, Valid: true}
		thumbContentType = nullString(record.Thumbnail.ContentType)
	}

	var publishedAt sql.NullTime
	if record.PublishedAt != nil {
		publishedAt = sql.NullTime{Time: *record.PublishedAt, Valid: true}
	}

	categories := record.Categories
	if categories == nil {
		categories = []string{}
	}

	return []any{
		record.Id, string(record.SourceVariant),
		nullString(record.YoutubeURL), nullString(record.EmbedCode), nullString(record.UploadedFileRef),
		nullString(record.ExternalId),
		record.Title, record.Description, record.Author, record.DurationDisplay,
		thumbKey, thumbURL, thumbSize, thumbContentType,
		publishedAt, record.IsNew, record.IsPublic, record.Featured, record.Highlight, record.IsRestricted,
		record.VerificationMessage, record.Views, pq.Array(categories), record.CreatedAt,
	}
}

func (s *PostgresStore) Insert(ctx context.Context, record *Record) error {
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := s.database.ExecContext(ctx, `
		INSERT INTO videos (`+videoColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`,
		s.insertArgs(record)...)
	return mapUniqueViolation(err)
}

func (s *PostgresStore) Update(ctx context.Context, record *Record) error {
	result, err := s.database.ExecContext(ctx, `
		UPDATE videos SET
			source_variant = $2, youtube_url = $3, embed_code = $4, uploaded_file_ref = $5, external_id = $6,
			title = $7, description = $8, author = $9, duration = $10,
			thumbnail_key = $11, thumbnail_url = $12, thumbnail_size = $13, thumbnail_content_type = $14,
			published_at = $15, is_new = $16, is_public = $17, featured = $18, highlight = $19, is_restricted = $20,
			verification_message = $21, views = $22, categories = $23, created_at = $24
		WHERE id = $1`,
		s.insertArgs(record)...)
	if err != nil {
		return mapUniqueViolation(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (s *PostgresStore) Search(ctx context.Context, params SearchParams) ([]Record, int, error) {
	if params.Page < 1 {
		params.Page = 1
	}

	categories := params.Categories
	if categories == nil {
		categories = []string{}
	}

	const filter = `FROM videos WHERE is_public
		AND ($1 = '' OR title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		AND (cardinality($2::text[]) = 0 OR categories && $2::text[])`

	var total int
	err := s.database.QueryRowContext(ctx, "SELECT COUNT(*) "+filter,
		params.SearchQuery, pq.Array(categories)).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.database.QueryContext(ctx,
		"SELECT "+videoColumns+" "+filter+" ORDER BY created_at DESC LIMIT $3 OFFSET $4",
		params.SearchQuery, pq.Array(categories), SearchPageSize, (params.Page-1)*SearchPageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	return records, total, err
}

func (s *PostgresStore) Highlighted(ctx context.Context) ([]Record, error) {
	rows, err := s.database.QueryContext(ctx,
		"SELECT "+videoColumns+" FROM videos WHERE highlight AND is_public ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecords(rows)
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

func (s *PostgresStore) IncrementViews(ctx context.Context, title string) error {
	result, err := s.database.ExecContext(ctx,
		"UPDATE videos SET views = views + 1 WHERE title = $1", title)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
