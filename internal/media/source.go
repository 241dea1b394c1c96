package media

import (
	"fmt"
	"strings"
)

type SourceKind string

const (
	SourceKindYoutube SourceKind = "youtube"
	SourceKindEmbed   SourceKind = "embed"
	SourceKindUpload  SourceKind = "upload"
)

func ParseSourceKind(kind string) (SourceKind, error) {
	switch kind {
	case string(SourceKindYoutube), string(SourceKindEmbed), string(SourceKindUpload):
		return SourceKind(kind), nil
	default:
		return "", fmt.Errorf("Invalid source type: %s", kind)
	}
}

// Source is the declared origin of a catalog submission. Exactly one arm
// exists per submission and each arm carries only the fields that are legal
// for it.
type Source interface {
	Kind() SourceKind
	// Validate appends one message per missing required field.
	Validate(sink *ValidationSink)
}

type YoutubeSource struct {
	URL string
}

func (s YoutubeSource) Kind() SourceKind {
	return SourceKindYoutube
}

func (s YoutubeSource) Validate(sink *ValidationSink) {
	if strings.TrimSpace(s.URL) == "" {
		sink.Add("For YouTube source, the URL is required.")
	}
}

type EmbedSource struct {
	Markup string
	// ThumbnailURL is optional; embeds have no metadata API to provide one.
	ThumbnailURL string
}

func (s EmbedSource) Kind() SourceKind {
	return SourceKindEmbed
}

func (s EmbedSource) Validate(sink *ValidationSink) {
	if strings.TrimSpace(s.Markup) == "" {
		sink.Add("For the Embed source, the embed code is required.")
	}
}

type UploadSource struct {
	FileRef string
}

func (s UploadSource) Kind() SourceKind {
	return SourceKindUpload
}

func (s UploadSource) Validate(sink *ValidationSink) {
	if strings.TrimSpace(s.FileRef) == "" {
		sink.Add("For the Upload source, the file is mandatory.")
	}
}

// ValidationSink accumulates human-readable rejection messages. Any
// accumulation rejects the whole submission.
type ValidationSink struct {
	Messages []string
}

func (s *ValidationSink) Add(msg string) {
	s.Messages = append(s.Messages, msg)
}

type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

// RawSource is the loosely-typed intake shape before classification.
type RawSource struct {
	SourceType      string
	YoutubeURL      string
	EmbedCode       string
	ThumbnailURL    string
	UploadedFileRef string
}

// ClassifySource checks a raw submission against its declared source type
// and returns the matching Source arm. A *ValidationError listing every
// problem rejects the submission atomically; no side effects happen here.
func ClassifySource(raw RawSource) (Source, error) {
	var sink ValidationSink

	kind, err := ParseSourceKind(raw.SourceType)
	if err != nil {
		sink.Add(err.Error())
		return nil, &ValidationError{Messages: sink.Messages}
	}

	var source Source
	switch kind {
	case SourceKindYoutube:
		source = YoutubeSource{URL: raw.YoutubeURL}
	case SourceKindEmbed:
		source = EmbedSource{Markup: raw.EmbedCode, ThumbnailURL: raw.ThumbnailURL}
	case SourceKindUpload:
		source = UploadSource{FileRef: raw.UploadedFileRef}
	}

	source.Validate(&sink)
	if len(sink.Messages) > 0 {
		return nil, &ValidationError{Messages: sink.Messages}
	}

	return source, nil
}
