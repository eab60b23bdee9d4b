// Package whisper_server provides transcription against a self-hosted
// whisper HTTP server. It is the "local backend" path: no OpenAI key is
// needed, only a reachable server URL.
package whisper_server

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
	"time"

	"clinic-scribe/internal/app/api"
	"clinic-scribe/internal/app/model"
)

// Provider talks to a whisper.cpp style HTTP server.
type Provider struct {
	baseURL    string
	httpClient *http.Client
}

// NewProvider creates a provider for the server at baseURL.
func NewProvider(baseURL string, httpClient *http.Client) (*Provider, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("whisper_server: base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// Name implements api.Transcriber.
func (p *Provider) Name() string {
	return "whisper_server"
}

type inferenceResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
	Error string `json:"error"`
}

// Transcribe implements api.Transcriber.
func (p *Provider) Transcribe(ctx context.Context, req *api.TranscriptionRequest) (*api.TranscriptionResult, error) {
	if req == nil || req.Audio == nil {
		return nil, errors.New("whisper_server: audio data is required")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("response_format", "json"); err != nil {
		return nil, fmt.Errorf("whisper_server: write response_format field: %w", err)
	}
	if req.Language != "" {
		if err := writer.WriteField("language", req.Language); err != nil {
			return nil, fmt.Errorf("whisper_server: write language field: %w", err)
		}
	}

	filename := req.FileName
	if filename == "" {
		filename = "audio.webm"
	}
	filePart, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("whisper_server: create file form field: %w", err)
	}
	if _, err := io.Copy(filePart, req.Audio); err != nil {
		return nil, fmt.Errorf("whisper_server: write audio data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("whisper_server: close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/inference", &buf)
	if err != nil {
		return nil, fmt.Errorf("whisper_server: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("whisper_server: request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(httpResp.Body, 1024))
		return nil, fmt.Errorf("whisper_server: server returned status %d: %s", httpResp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var response inferenceResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("whisper_server: decode response: %w", err)
	}
	if response.Error != "" {
		return nil, fmt.Errorf("whisper_server: %s", response.Error)
	}

	result := &api.TranscriptionResult{
		Text:     strings.TrimSpace(response.Text),
		Language: response.Language,
		Model:    "whisper_server",
	}
	for i, seg := range response.Segments {
		result.Segments = append(result.Segments, model.TranscriptSegment{
			ID:    i,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
		if seg.End > result.DurationSec {
			result.DurationSec = seg.End
		}
	}
	return result, nil
}
