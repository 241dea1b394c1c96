package media

import (
	"strings"
	"testing"

	"google.golang.org/api/youtube/v3"
)

func TestExtractVideoId(t *testing.T) {
	cases := []struct {
		url string
		id  string
		ok  bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?si=share", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/u/x/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://example.com/page?other=1&v=dQw4w9WgXcQ#frag", "dQw4w9WgXcQ", true},
		{"https://vimeo.com/123456", "", false},
		{"https://www.youtube.com/watch?v=tooshort", "", false},
		{"https://www.youtube.com/watch?v=waytoolongid12345", "", false},
		{"not a url at all", "", false},
		{"", "", false},
	}

	for _, c := range cases {
		id, ok := ExtractVideoId(c.url)
		if ok != c.ok || id != c.id {
			t.Errorf("ExtractVideoId(%q) = (%q, %v), want (%q, %v)", c.url, id, ok, c.id, c.ok)
		}
	}
}

func TestCheckVideoId(t *testing.T) {
	if !CheckVideoId("dQw4w9WgXcQ") {
		t.Error("valid id rejected")
	}
	if CheckVideoId("dQw4w9WgXc") {
		t.Error("10-character id accepted")
	}
	if CheckVideoId("dQw4w9WgXc!") {
		t.Error("id with illegal character accepted")
	}
}

func TestEmbedMarkup(t *testing.T) {
	markup := EmbedMarkup("dQw4w9WgXcQ")
	if !strings.Contains(markup, "https://www.youtube.com/embed/dQw4w9WgXcQ") {
		t.Errorf("embed markup missing player URL: %s", markup)
	}
	if !strings.HasPrefix(markup, "<iframe") || !strings.HasSuffix(markup, "</iframe>") {
		t.Errorf("embed markup is not an iframe: %s", markup)
	}
}

func TestBestThumbnail(t *testing.T) {
	maxres := &youtube.Thumbnail{Url: "https://i.ytimg.com/vi/x/maxresdefault.jpg"}
	standard := &youtube.Thumbnail{Url: "https://i.ytimg.com/vi/x/sddefault.jpg"}
	high := &youtube.Thumbnail{Url: "https://i.ytimg.com/vi/x/hqdefault.jpg"}

	cases := []struct {
		details *youtube.ThumbnailDetails
		want    string
	}{
		{&youtube.ThumbnailDetails{Maxres: maxres, Standard: standard, High: high}, maxres.Url},
		{&youtube.ThumbnailDetails{Standard: standard, High: high}, standard.Url},
		{&youtube.ThumbnailDetails{High: high}, high.Url},
		{&youtube.ThumbnailDetails{}, ""},
		{nil, ""},
	}

	for i, c := range cases {
		if got := bestThumbnail(c.details); got != c.want {
			t.Errorf("case %d: bestThumbnail = %q, want %q", i, got, c.want)
		}
	}
}
