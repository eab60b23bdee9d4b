package provider

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"clinic-scribe/internal/app/api"
)

var (
	transcriptionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scribe_transcription_requests_total",
			Help: "Transcription requests by provider and outcome.",
		},
		[]string{"provider", "status"},
	)

	transcriptionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scribe_transcription_duration_seconds",
			Help:    "Wall-clock transcription latency by provider.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"provider"},
	)
)

// Stats holds in-process counters for one provider.
type Stats struct {
	Provider           string  `json:"provider"`
	TotalRequests      int64   `json:"total_requests"`
	SuccessfulRequests int64   `json:"successful_requests"`
	FailedRequests     int64   `json:"failed_requests"`
	SuccessRate        float64 `json:"success_rate"`
	AverageLatencyMs   float64 `json:"average_latency_ms"`
	AudioProcessedSec  float64 `json:"audio_processed_sec"`
	LastUsed           int64   `json:"last_used"`
}

// InstrumentedTranscriber wraps a transcriber with Prometheus and in-process
// metrics.
type InstrumentedTranscriber struct {
	inner api.Transcriber

	mu    sync.Mutex
	stats Stats
}

// Instrument wraps the given transcriber.
func Instrument(inner api.Transcriber) *InstrumentedTranscriber {
	return &InstrumentedTranscriber{
		inner: inner,
		stats: Stats{Provider: inner.Name()},
	}
}

// Name implements api.Transcriber.
func (it *InstrumentedTranscriber) Name() string {
	return it.inner.Name()
}

// Transcribe implements api.Transcriber.
func (it *InstrumentedTranscriber) Transcribe(ctx context.Context, req *api.TranscriptionRequest) (*api.TranscriptionResult, error) {
	started := time.Now()
	result, err := it.inner.Transcribe(ctx, req)
	elapsed := time.Since(started)

	transcriptionDuration.WithLabelValues(it.inner.Name()).Observe(elapsed.Seconds())
	if err != nil {
		transcriptionRequests.WithLabelValues(it.inner.Name(), "error").Inc()
		it.record(elapsed, 0, false)
		return nil, err
	}

	transcriptionRequests.WithLabelValues(it.inner.Name(), "ok").Inc()
	it.record(elapsed, result.DurationSec, true)
	return result, nil
}

// Snapshot returns a copy of the in-process stats.
func (it *InstrumentedTranscriber) Snapshot() Stats {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.stats
}

func (it *InstrumentedTranscriber) record(elapsed time.Duration, audioSec float64, ok bool) {
	it.mu.Lock()
	defer it.mu.Unlock()

	s := &it.stats
	s.TotalRequests++
	if ok {
		s.SuccessfulRequests++
		s.AudioProcessedSec += audioSec
	} else {
		s.FailedRequests++
	}
	s.LastUsed = time.Now().Unix()

	latencyMs := float64(elapsed.Milliseconds())
	if s.AverageLatencyMs == 0 {
		s.AverageLatencyMs = latencyMs
	} else {
		// Weighted average favoring recent results
		s.AverageLatencyMs = s.AverageLatencyMs*0.8 + latencyMs*0.2
	}
	s.SuccessRate = float64(s.SuccessfulRequests) / float64(s.TotalRequests)
}
