package api

import (
	"context"
	"io"

	"clinic-scribe/internal/app/model"
)

// TranscriptionRequest carries one audio upload to a provider.
type TranscriptionRequest struct {
	FileName    string
	ContentType string
	Audio       io.Reader
	Language    string
}

// TranscriptionResult is the provider-neutral transcription output.
type TranscriptionResult struct {
	Text        string
	Language    string
	DurationSec float64
	Segments    []model.TranscriptSegment
	Model       string
}

// Transcriber converts an audio stream to a diarized transcript.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, req *TranscriptionRequest) (*TranscriptionResult, error)
}
