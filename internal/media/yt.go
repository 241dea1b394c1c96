package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var ErrMediaNotFound = errors.New("Media not found")

func checkId(s string) bool {
	for _, r := range s {
		suitable := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
		if !suitable {
			return false
		}
	}

	return true
}

func CheckVideoId(id string) bool {
	return len(id) == 11 && checkId(id)
}

// clipId cuts off everything from the first URL delimiter onwards.
func clipId(s string) string {
	if i := strings.IndexAny(s, "#&?"); i >= 0 {
		return s[:i]
	}

	return s
}

// ExtractVideoId pulls the canonical 11-character video id out of a YouTube
// URL, trying the known shapes in order. A URL matching none of them is not
// an error: the submission simply proceeds without external resolution.
func ExtractVideoId(rawURL string) (id string, ok bool) {
	for _, marker := range []string{"watch?v=", "youtu.be/", "/v/", "/embed/", "&v="} {
		if _, after, found := strings.Cut(rawURL, marker); found {
			if id := clipId(after); CheckVideoId(id) {
				return id, true
			}
		}
	}

	// channel upload shape: /u/<char>/<id>
	if _, after, found := strings.Cut(rawURL, "/u/"); found && len(after) > 2 && after[1] == '/' {
		if id := clipId(after[2:]); CheckVideoId(id) {
			return id, true
		}
	}

	return "", false
}

// EmbedMarkup generates the iframe markup used to play a YouTube video
// inline, referencing the given video id.
func EmbedMarkup(id string) string {
	return fmt.Sprintf(`<iframe width="560" height="315" src="https://www.youtube.com/embed/%s" title="YouTube video player" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share" referrerpolicy="strict-origin-when-cross-origin" allowfullscreen></iframe>`, id)
}

// ExternalMetadata is the ephemeral bundle a metadata lookup produces. It is
// consumed immediately by record assembly and never persisted as-is.
type ExternalMetadata struct {
	Title           string
	Description     string
	ThumbnailURL    string
	Author          string
	PublishedAt     time.Time
	DurationDisplay string
	EmbedMarkup     string
}

type Resolver interface {
	ResolveVideo(ctx context.Context, id string) (*ExternalMetadata, error)
}

// YoutubeAPI resolves video metadata through the YouTube Data API. The key
// is an explicit dependency of the resolver, not ambient process state.
type YoutubeAPI struct {
	apiKey string
}

func NewYoutubeAPI(apiKey string) *YoutubeAPI {
	return &YoutubeAPI{apiKey: apiKey}
}

func (yt *YoutubeAPI) newClient(ctx context.Context) (*youtube.Service, error) {
	return youtube.NewService(ctx, option.WithAPIKey(yt.apiKey))
}

// ResolveVideo issues a single Videos.List call for the id. It never
// retries; callers treat any error here as a degrade, not a failure.
func (yt *YoutubeAPI) ResolveVideo(ctx context.Context, id string) (*ExternalMetadata, error) {
	client, err := yt.newClient(ctx)
	if err != nil {
		return nil, err
	}

	response, err := client.Videos.List([]string{"snippet", "contentDetails"}).Id(id).MaxResults(1).Do()
	if err != nil {
		return nil, err
	}

	if len(response.Items) < 1 {
		return nil, ErrMediaNotFound
	}

	video := response.Items[0]
	snippet := video.Snippet

	publishedAt, err := time.Parse(time.RFC3339, snippet.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("Invalid publish timestamp %q: %w", snippet.PublishedAt, err)
	}

	durationDisplay := UnknownDuration
	if video.ContentDetails != nil {
		durationDisplay = FormatISODuration(video.ContentDetails.Duration)
	}

	return &ExternalMetadata{
		Title:           snippet.Title,
		Description:     snippet.Description,
		ThumbnailURL:    bestThumbnail(snippet.Thumbnails),
		Author:          snippet.ChannelTitle,
		PublishedAt:     publishedAt,
		DurationDisplay: durationDisplay,
		EmbedMarkup:     EmbedMarkup(id),
	}, nil
}

// bestThumbnail picks the highest-resolution variant YouTube offers.
func bestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}

	for _, thumb := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}

	return ""
}
