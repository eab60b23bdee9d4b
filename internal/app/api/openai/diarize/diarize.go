// Package diarize implements speaker-attributed transcription against the
// OpenAI audio API. The diarized response format is not covered by the SDK's
// typed audio client, so the request is built as raw multipart/form-data and
// decoded into local types.
package diarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"clinic-scribe/internal/app/api"
	openaiclient "clinic-scribe/internal/app/api/openai"
	"clinic-scribe/internal/app/model"
)

const (
	// DefaultModel is the diarizing transcription model.
	DefaultModel = "gpt-4o-transcribe-diarize"

	// DefaultBaseURL is the OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	responseFormat   = "diarized_json"
	chunkingStrategy = "auto"
)

// Transcriber calls the OpenAI diarized transcription endpoint.
type Transcriber struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option configures a Transcriber.
type Option func(*Transcriber)

// WithBaseURL overrides the API root (used by tests and proxies).
func WithBaseURL(baseURL string) Option {
	return func(t *Transcriber) { t.baseURL = baseURL }
}

// WithModel overrides the transcription model.
func WithModel(modelName string) Option {
	return func(t *Transcriber) {
		if modelName != "" {
			t.model = modelName
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transcriber) { t.httpClient = client }
}

// NewTranscriber creates a diarizing transcriber authenticated with apiKey.
func NewTranscriber(apiKey string, opts ...Option) *Transcriber {
	t := &Transcriber{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.httpClient == nil {
		t.httpClient = openaiclient.NewBearerHTTPClient(apiKey)
	}
	return t
}

// Name implements api.Transcriber.
func (t *Transcriber) Name() string {
	return "openai"
}

// transcriptionResponse mirrors the diarized_json payload.
type transcriptionResponse struct {
	Task     string             `json:"task"`
	Language string             `json:"language"`
	Duration float64            `json:"duration"`
	Text     string             `json:"text"`
	Segments []diarizedSegment  `json:"segments"`
	Error    *upstreamErrorBody `json:"error"`
}

type diarizedSegment struct {
	ID      int     `json:"id"`
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
}

type upstreamErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Transcribe implements api.Transcriber.
func (t *Transcriber) Transcribe(ctx context.Context, req *api.TranscriptionRequest) (*api.TranscriptionResult, error) {
	if req == nil || req.Audio == nil {
		return nil, errors.New("diarize: audio data is required")
	}

	filename := strings.TrimSpace(req.FileName)
	if filename == "" {
		filename = "audio.webm"
	}

	body, contentType, err := buildForm(t.model, filename, req)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(t.baseURL, "/") + "/audio/transcriptions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("diarize: build transcription request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("diarize: transcription request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(httpResp)
	}

	var response transcriptionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("diarize: decode transcription response: %w", err)
	}

	return toResult(t.model, &response), nil
}

func buildForm(modelName, filename string, req *api.TranscriptionRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"model":             modelName,
		"response_format":   responseFormat,
		"chunking_strategy": chunkingStrategy,
	}
	if req.Language != "" {
		fields["language"] = req.Language
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("diarize: write %s field: %w", key, err)
		}
	}

	filePart, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("diarize: create file form field: %w", err)
	}
	if _, err := io.Copy(filePart, req.Audio); err != nil {
		return nil, "", fmt.Errorf("diarize: write audio data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("diarize: close multipart writer: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

func decodeAPIError(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var wrapped struct {
		Error *upstreamErrorBody `json:"error"`
	}
	if err := json.Unmarshal(payload, &wrapped); err == nil && wrapped.Error != nil && wrapped.Error.Message != "" {
		return fmt.Errorf("diarize: transcription API error (status %d): %s", resp.StatusCode, wrapped.Error.Message)
	}
	return fmt.Errorf("diarize: transcription API error (status %d)", resp.StatusCode)
}

func toResult(modelName string, resp *transcriptionResponse) *api.TranscriptionResult {
	result := &api.TranscriptionResult{
		Text:        resp.Text,
		Language:    resp.Language,
		DurationSec: resp.Duration,
		Model:       modelName,
	}

	result.Segments = make([]model.TranscriptSegment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, model.TranscriptSegment{
			ID:      seg.ID,
			Speaker: seg.Speaker,
			Start:   seg.Start,
			End:     seg.End,
			Text:    seg.Text,
		})
	}

	// Some responses carry only segments; synthesize the flat text.
	if result.Text == "" && len(result.Segments) > 0 {
		parts := make([]string, 0, len(result.Segments))
		for _, seg := range result.Segments {
			parts = append(parts, strings.TrimSpace(seg.Text))
		}
		result.Text = strings.Join(parts, " ")
	}

	return result
}
