package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/videoteca/backend/internal/blob"
	"github.com/videoteca/backend/internal/catalog"
	"github.com/videoteca/backend/internal/media"
)

// Intake is the raw submission payload. Empty optional fields mean "not
// supplied": on update they keep the previously stored value.
type Intake struct {
	SourceType      string
	YoutubeURL      string
	EmbedCode       string
	UploadedFileRef string

	Title        string
	Description  string
	Author       string
	ThumbnailURL string

	IsPublic            *bool
	Featured            *bool
	Highlight           *bool
	IsRestricted        *bool
	VerificationMessage string
	Categories          []string
}

func (in Intake) rawSource() media.RawSource {
	return media.RawSource{
		SourceType:      in.SourceType,
		YoutubeURL:      in.YoutubeURL,
		EmbedCode:       in.EmbedCode,
		ThumbnailURL:    in.ThumbnailURL,
		UploadedFileRef: in.UploadedFileRef,
	}
}

// Pipeline runs one ingestion per call as a sequential request-scoped flow.
// The catalog and blob stores are the only shared resources; they handle
// their own concurrency.
type Pipeline struct {
	store    catalog.Store
	blobs    blob.Store
	resolver media.Resolver
	client   *http.Client
	now      func() time.Time
}

// NewPipeline wires the ingestion stages. A nil resolver disables external
// metadata resolution; every youtube submission then degrades to its
// user-supplied fields.
func NewPipeline(store catalog.Store, blobs blob.Store, resolver media.Resolver) *Pipeline {
	return &Pipeline{
		store:    store,
		blobs:    blobs,
		resolver: resolver,
		client:   http.DefaultClient,
		now:      time.Now,
	}
}

// resolution is the immutable outcome of the external stages, threaded into
// record assembly. A zero value means resolution degraded or was skipped.
type resolution struct {
	externalId string
	meta       *media.ExternalMetadata
	thumbnail  *blob.Asset
}

// Create ingests a new submission and commits the assembled record.
func (p *Pipeline) Create(ctx context.Context, intake Intake) (*catalog.Record, error) {
	source, err := media.ClassifySource(intake.rawSource())
	if err != nil {
		return nil, err
	}

	record := catalog.Record{
		SourceVariant: source.Kind(),
		Title:         intake.Title,
		Description:   intake.Description,
		Author:        intake.Author,
		IsPublic:      true,
		Categories:    intake.Categories,
	}
	applyFlags(&record, intake)

	record, err = p.resolveSource(ctx, nil, record, source)
	if err != nil {
		return nil, err
	}

	if err := p.store.Insert(ctx, &record); err != nil {
		return nil, storeError(err)
	}

	return &record, nil
}

// Update re-ingests an existing record. Resubmitting an unchanged YouTube
// URL leaves every externally-resolved field as stored and triggers no
// external call.
func (p *Pipeline) Update(ctx context.Context, id uuid.UUID, intake Intake) (*catalog.Record, error) {
	prev, err := p.store.FindById(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if prev == nil {
		return nil, catalog.ErrRecordNotFound
	}

	source, err := media.ClassifySource(intake.rawSource())
	if err != nil {
		return nil, err
	}

	// the source variant is immutable after creation
	if source.Kind() != prev.SourceVariant {
		return nil, &media.ValidationError{Messages: []string{"The source type cannot be changed."}}
	}

	record := *prev
	record.Title = firstNonEmpty(intake.Title, prev.Title)
	record.Description = firstNonEmpty(intake.Description, prev.Description)
	record.Author = firstNonEmpty(intake.Author, prev.Author)
	if intake.Categories != nil {
		record.Categories = intake.Categories
	}
	applyFlags(&record, intake)

	record, err = p.resolveSource(ctx, prev, record, source)
	if err != nil {
		return nil, err
	}

	if err := p.store.Update(ctx, &record); err != nil {
		return nil, storeError(err)
	}

	return &record, nil
}

// resolveSource runs the variant-specific stages and assembles the result.
func (p *Pipeline) resolveSource(ctx context.Context, prev *catalog.Record, record catalog.Record, source media.Source) (catalog.Record, error) {
	switch src := source.(type) {
	case media.YoutubeSource:
		record.YoutubeURL = src.URL

		if prev != nil && prev.YoutubeURL == src.URL {
			// idempotent resubmission: pure passthrough of the
			// previously resolved fields
			return record, nil
		}

		res, err := p.resolveYoutube(ctx, prev, src.URL)
		if err != nil {
			return record, err
		}

		return assembleRecord(record, res, p.now()), nil

	case media.EmbedSource:
		record.EmbedCode = src.Markup

		var res resolution
		if src.ThumbnailURL != "" {
			filename := thumbnailFilename("embed-thumbnail", record.Title, src.ThumbnailURL)
			res.thumbnail = p.fetchThumbnail(ctx, src.ThumbnailURL, filename)
		}

		return assembleRecord(record, res, p.now()), nil

	case media.UploadSource:
		record.UploadedFileRef = src.FileRef
		return record, nil

	default:
		return record, fmt.Errorf("Unsupported source kind: %s", source.Kind())
	}
}

// resolveYoutube covers id extraction, the duplicate guard, the metadata
// lookup and thumbnail acquisition. Only a duplicate id or a store failure
// is fatal; everything else degrades to a zero resolution.
func (p *Pipeline) resolveYoutube(ctx context.Context, prev *catalog.Record, url string) (resolution, error) {
	var res resolution

	id, ok := media.ExtractVideoId(url)
	if !ok {
		slog.Warn("Unable to extract a video id, continuing with user-supplied fields", "url", url)
		return res, nil
	}

	existing, err := p.store.FindByExternalId(ctx, id)
	if err != nil {
		return res, storeError(err)
	}
	if existing != nil && (prev == nil || existing.Id != prev.Id) {
		slog.Warn("Video already exists", "videoId", id)
		return res, catalog.ErrDuplicateExternalId
	}

	if p.resolver == nil {
		slog.Warn("No metadata resolver configured, continuing with user-supplied fields", "videoId", id)
		return res, nil
	}

	meta, err := p.resolver.ResolveVideo(ctx, id)
	if err != nil {
		slog.Warn("Unable to fetch video details", "videoId", id, "err", err)
		return res, nil
	}

	res.externalId = id
	res.meta = meta

	if meta.ThumbnailURL != "" {
		filename := thumbnailFilename("youtube-thumbnail", id, meta.ThumbnailURL)
		res.thumbnail = p.fetchThumbnail(ctx, meta.ThumbnailURL, filename)
	}

	return res, nil
}

func applyFlags(record *catalog.Record, intake Intake) {
	if intake.IsPublic != nil {
		record.IsPublic = *intake.IsPublic
	}
	if intake.Featured != nil {
		record.Featured = *intake.Featured
	}
	if intake.Highlight != nil {
		record.Highlight = *intake.Highlight
	}
	if intake.IsRestricted != nil {
		record.IsRestricted = *intake.IsRestricted
	}
	if intake.VerificationMessage != "" {
		record.VerificationMessage = intake.VerificationMessage
	}
}

func storeError(err error) error {
	switch err {
	case catalog.ErrDuplicateExternalId, catalog.ErrDuplicateTitle, catalog.ErrRecordNotFound:
		return err
	}

	return fmt.Errorf("Unable to access database: %w", err)
}
