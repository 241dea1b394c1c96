package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"

	"github.com/dchest/uniuri"

	"github.com/videoteca/backend/internal/blob"
)

// fetchThumbnail streams the image at thumbnailURL into the blob store.
// Any failure is logged and swallowed: ingestion proceeds without an asset.
func (p *Pipeline) fetchThumbnail(ctx context.Context, thumbnailURL, filename string) *blob.Asset {
	asset, err := p.acquireThumbnail(ctx, thumbnailURL, filename)
	if err != nil {
		slog.Warn("Failed to download thumbnail", "url", thumbnailURL, "err", err)
		return nil
	}

	slog.Info("Thumbnail downloaded", "url", thumbnailURL, "key", asset.Key, "size", asset.Size)
	return asset
}

func (p *Pipeline) acquireThumbnail(ctx context.Context, thumbnailURL, filename string) (*blob.Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, thumbnailURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	// the response body is handed straight to the store, never buffered
	return p.blobs.Put(ctx, resp.Body, filename, contentType)
}

// thumbnailFilename derives the deterministic blob name from the record's
// id or title plus the source extension.
func thumbnailFilename(prefix, stem, thumbnailURL string) string {
	if stem == "" {
		stem = uniuri.New()
	}

	ext := ".jpg"
	if u, err := url.Parse(thumbnailURL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}

	return prefix + "-" + stem + ext
}
