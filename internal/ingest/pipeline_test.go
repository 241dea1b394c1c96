package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/videoteca/backend/internal/blob"
	"github.com/videoteca/backend/internal/catalog"
	"github.com/videoteca/backend/internal/media"
)

type stubResolver struct {
	meta  media.ExternalMetadata
	err   error
	calls int
}

func (r *stubResolver) ResolveVideo(ctx context.Context, id string) (*media.ExternalMetadata, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}

	meta := r.meta
	if meta.EmbedMarkup == "" {
		meta.EmbedMarkup = media.EmbedMarkup(id)
	}
	return &meta, nil
}

func thumbnailServer(t *testing.T, status int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte("jpeg bytes"))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestPipeline(resolver media.Resolver) (*Pipeline, *catalog.MemoryStore, *blob.MemoryStore) {
	store := catalog.NewMemoryStore()
	blobs := blob.NewMemoryStore()
	return NewPipeline(store, blobs, resolver), store, blobs
}

func TestCreateYoutubeEndToEnd(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	server := thumbnailServer(t, http.StatusOK)

	resolver := &stubResolver{meta: media.ExternalMetadata{
		Title:           "T",
		Description:     "resolved description",
		Author:          "Channel",
		ThumbnailURL:    server.URL + "/maxresdefault.jpg",
		PublishedAt:     now.AddDate(0, 0, -2),
		DurationDisplay: media.FormatISODuration("PT3M20S"),
	}}

	pipeline, _, blobs := newTestPipeline(resolver)
	pipeline.now = func() time.Time { return now }

	record, err := pipeline.Create(context.Background(), Intake{
		SourceType: "youtube",
		YoutubeURL: "https://youtu.be/abcdefghijk",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if record.ExternalId != "abcdefghijk" {
		t.Errorf("unexpected external id: %q", record.ExternalId)
	}
	if record.Title != "T" {
		t.Errorf("unexpected title: %q", record.Title)
	}
	if record.DurationDisplay != "03:20" {
		t.Errorf("unexpected duration: %q", record.DurationDisplay)
	}
	if !record.IsNew {
		t.Error("record published two days ago should be new")
	}
	if record.Thumbnail == nil {
		t.Fatal("thumbnail asset missing")
	}
	if record.PublishedAt == nil || !record.PublishedAt.Equal(now.AddDate(0, 0, -2)) {
		t.Errorf("unexpected publish date: %v", record.PublishedAt)
	}

	blobs.Get("youtube-thumbnail-abcdefghijk.jpg", func(obj blob.MemoryObject, ok bool) {
		if !ok {
			t.Fatal("thumbnail not stored in blob store")
		}
		if string(obj.Data) != "jpeg bytes" {
			t.Errorf("unexpected thumbnail content: %q", obj.Data)
		}
	})
}

func TestCreateDuplicateExternalId(t *testing.T) {
	resolver := &stubResolver{meta: media.ExternalMetadata{Title: "first", PublishedAt: time.Now()}}
	pipeline, _, _ := newTestPipeline(resolver)

	if _, err := pipeline.Create(context.Background(), Intake{
		SourceType: "youtube",
		YoutubeURL: "https://youtu.be/abcdefghijk",
	}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// different URL shape, same canonical id
	_, err := pipeline.Create(context.Background(), Intake{
		SourceType: "youtube",
		YoutubeURL: "https://www.youtube.com/watch?v=abcdefghijk",
	})
	if !errors.Is(err, catalog.ErrDuplicateExternalId) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestUpdateUnchangedURLIsIdempotent(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	resolver := &stubResolver{meta: media.ExternalMetadata{
		Title:           "T",
		PublishedAt:     now.AddDate(0, 0, -2),
		DurationDisplay: "03:20",
	}}

	pipeline, _, _ := newTestPipeline(resolver)
	pipeline.now = func() time.Time { return now }

	record, err := pipeline.Create(context.Background(), Intake{
		SourceType: "youtube",
		YoutubeURL: "https://youtu.be/abcdefghijk",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected one resolver call, got %d", resolver.calls)
	}

	updated, err := pipeline.Update(context.Background(), record.Id, Intake{
		SourceType:  "youtube",
		YoutubeURL:  "https://youtu.be/abcdefghijk",
		Description: "edited description",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if resolver.calls != 1 {
		t.Errorf("unchanged URL must not trigger a resolver call, got %d calls", resolver.calls)
	}
	if updated.Description != "edited description" {
		t.Errorf("user edit lost: %q", updated.Description)
	}
	if updated.DurationDisplay != record.DurationDisplay ||
		updated.EmbedCode != record.EmbedCode ||
		updated.IsNew != record.IsNew {
		t.Error("externally-resolved fields changed on idempotent update")
	}
	if updated.PublishedAt == nil || !updated.PublishedAt.Equal(*record.PublishedAt) {
		t.Errorf("publish date changed on idempotent update: %v", updated.PublishedAt)
	}
}

func TestUpdateChangedURLResolvesAgain(t *testing.T) {
	resolver := &stubResolver{meta: media.ExternalMetadata{Title: "first title", PublishedAt: time.Now()}}
	pipeline, _, _ := newTestPipeline(resolver)

	record, err := pipeline.Create(context.Background(), Intake{
		SourceType: "youtube",
		YoutubeURL: "https://youtu.be/abcdefghijk",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	resolver.meta.Title = "second title"
	updated, err := pipeline.Update(context.Background(), record.Id, Intake{
		SourceType: "youtube",
		YoutubeURL: "https://youtu.be/AAAAAAAAAAA",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if resolver.calls != 2 {
		t.Errorf("expected a second resolver call, got %d", resolver.calls)
	}
	if updated.ExternalId != "AAAAAAAAAAA" {
		t.Errorf("external id not updated: %q", updated.ExternalId)
	}
	if updated.Title != "first title" {
		// the stored title is non-empty, so the resolver must not win
		t.Errorf("resolved title overwrote stored title: %q", updated.Title)
	}
}

func TestUserTitleWinsOverResolved(t *testing.T) {
	resolver := &stubResolver{meta: media.ExternalMetadata{
		Title:       "resolved title",
		Description: "resolved description",
		PublishedAt: time.Now(),
	}}
	pipeline, _, _ := newTestPipeline(resolver)

	record, err := pipeline.Create(context.Background(), Intake{
		SourceType: "youtube",
		YoutubeURL: "https://youtu.be/abcdefghijk",
		Title:      "my title",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if record.Title != "my title" {
		t.Errorf("user title overwritten: %q", record.Title)
	}
	if record.Description != "resolved description" {
		t.Errorf("resolver should fill the empty description, got %q", record.Description)
	}
}

func TestThumbnailFailureIsIsolated(t *testing.T) {
	server := thumbnailServer(t, http.StatusNotFound)
	resolver := &stubResolver{meta: media.ExternalMetadata{
		Title:           "T",
		ThumbnailURL:    server.URL + "/maxresdefault.jpg",
		PublishedAt:     time.Now(),
		DurationDisplay: "03:20",
	}}

	pipeline, _, blobs := newTestPipeline(resolver)

	record, err := pipeline.Create(context.Background(), Intake{
		SourceType: "youtube",
		YoutubeURL: "https://youtu.be/abcdefghijk",
	})
	if err != nil {
		t.Fatalf("Create failed despite thumbnail 404: %v", err)
	}

	if record.Thumbnail != nil {
		t.Error("thumbnail asset attached despite 404")
	}
	if record.Title != "T" || record.ExternalId != "abcdefghijk" {
		t.Errorf("other fields lost: %+v", record)
	}
	if len(blobs.Objects) != 0 {
		t.Error("blob store should be empty after failed transfer")
	}
}

func TestResolverFailureDegrades(t *testing.T) {
	resolver := &stubResolver{err: errors.New("quota exceeded")}
	pipeline, store, _ := newTestPipeline(resolver)

	record, err := pipeline.Create(context.Background(), Intake{
		SourceType: "youtube",
		YoutubeURL: "https://youtu.be/abcdefghijk",
		Title:      "fallback title",
	})
	if err != nil {
		t.Fatalf("Create should degrade, not fail: %v", err)
	}

	if record.ExternalId != "" {
		t.Errorf("external id must stay absent when resolution fails: %q", record.ExternalId)
	}
	if record.Title != "fallback title" {
		t.Errorf("user-supplied title lost: %q", record.Title)
	}
	if record.PublishedAt != nil || record.IsNew {
		t.Error("system fields set despite failed resolution")
	}

	stored, err := store.FindById(context.Background(), record.Id)
	if err != nil || stored == nil {
		t.Fatalf("record not committed: %v", err)
	}
}

func TestUnresolvableURLDegrades(t *testing.T) {
	resolver := &stubResolver{meta: media.ExternalMetadata{Title: "T"}}
	pipeline, _, _ := newTestPipeline(resolver)

	record, err := pipeline.Create(context.Background(), Intake{
		SourceType: "youtube",
		YoutubeURL: "https://example.com/not-youtube",
		Title:      "manual title",
	})
	if err != nil {
		t.Fatalf("Create should degrade, not fail: %v", err)
	}

	if resolver.calls != 0 {
		t.Errorf("resolver called for unresolvable URL")
	}
	if record.ExternalId != "" || record.Title != "manual title" {
		t.Errorf("unexpected record: %+v", record)
	}
}

func TestCreateEmbedWithThumbnail(t *testing.T) {
	server := thumbnailServer(t, http.StatusOK)
	pipeline, _, blobs := newTestPipeline(nil)

	record, err := pipeline.Create(context.Background(), Intake{
		SourceType:   "embed",
		EmbedCode:    "<iframe src=\"https://player.example.com/1\"></iframe>",
		Title:        "clip",
		ThumbnailURL: server.URL + "/poster.png",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if record.Thumbnail == nil {
		t.Fatal("embed thumbnail not attached")
	}
	if record.IsNew {
		t.Error("embed records are never flagged new")
	}

	blobs.Get("embed-thumbnail-clip.png", func(obj blob.MemoryObject, ok bool) {
		if !ok {
			t.Fatal("embed thumbnail not stored")
		}
	})
}

func TestCreateUploadSkipsExternalSteps(t *testing.T) {
	pipeline, _, blobs := newTestPipeline(nil)

	record, err := pipeline.Create(context.Background(), Intake{
		SourceType:      "upload",
		UploadedFileRef: "videos/raw.mp4",
		Title:           "uploaded clip",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if record.UploadedFileRef != "videos/raw.mp4" || record.ExternalId != "" {
		t.Errorf("unexpected record: %+v", record)
	}
	if len(blobs.Objects) != 0 {
		t.Error("upload variant should not touch the blob store")
	}
}

func TestCreateValidation(t *testing.T) {
	pipeline, store, _ := newTestPipeline(nil)

	_, err := pipeline.Create(context.Background(), Intake{SourceType: "youtube"})
	var verr *media.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if records, _, _ := store.Search(context.Background(), catalog.SearchParams{}); len(records) != 0 {
		t.Error("rejected submission must not touch the store")
	}
}

func TestUpdateCannotChangeSourceVariant(t *testing.T) {
	pipeline, _, _ := newTestPipeline(nil)

	record, err := pipeline.Create(context.Background(), Intake{
		SourceType:      "upload",
		UploadedFileRef: "videos/raw.mp4",
		Title:           "clip",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = pipeline.Update(context.Background(), record.Id, Intake{
		SourceType: "embed",
		EmbedCode:  "<iframe></iframe>",
	})
	var verr *media.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
