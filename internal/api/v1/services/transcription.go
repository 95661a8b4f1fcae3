package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"voicescribe/internal/api/v1/dto"
	"voicescribe/internal/app/errors"
	"voicescribe/internal/app/repository"
	"voicescribe/internal/app/validation"
	"voicescribe/internal/metrics"
)

// TranscriptionServiceImpl implements TranscriptionService.
type TranscriptionServiceImpl struct {
	transcriber AudioTranscriber
	store       *repository.Facade
	keyPresent  func() bool
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// NewTranscriptionService creates the orchestration service. keyPresent
// reports whether the provider credential is configured; it is consulted per
// request so a rotated credential takes effect without a restart.
func NewTranscriptionService(
	transcriber AudioTranscriber,
	store *repository.Facade,
	keyPresent func() bool,
	logger *slog.Logger,
	m *metrics.Metrics,
) TranscriptionService {
	return &TranscriptionServiceImpl{
		transcriber: transcriber,
		store:       store,
		keyPresent:  keyPresent,
		logger:      logger,
		metrics:     m,
	}
}

// Transcribe runs one job: gate, provider round-trip, best-effort save.
// Upstream and timeout failures abort with no partial record. A save failure
// is logged and swallowed; the computed text is still returned.
func (s *TranscriptionServiceImpl) Transcribe(ctx context.Context, req *TranscribeRequest) (*dto.TranscribeResponse, error) {
	s.metrics.TranscriptionRequests.Inc()
	start := time.Now()

	upload := validation.Upload{
		Present:   true,
		Size:      req.Size,
		MediaType: req.MediaType,
	}
	if err := validation.Check(upload, s.keyPresent()); err != nil {
		s.metrics.TranscriptionFailures.WithLabelValues(string(errors.KindOf(err))).Inc()
		return nil, err
	}
	s.metrics.UploadBytes.Observe(float64(len(req.Data)))

	// The job is driven on a detached context: a caller disconnect must not
	// abort polling, the orchestration runs to its terminal state.
	text, err := s.transcriber.Transcribe(context.Background(), req.Data, req.FileName)
	if err != nil {
		s.metrics.TranscriptionFailures.WithLabelValues(string(errors.KindOf(err))).Inc()
		return nil, err
	}
	s.metrics.TranscriptionSuccesses.Inc()
	s.metrics.TranscriptionDuration.Observe(time.Since(start).Seconds())

	audioSource := fmt.Sprintf("uploaded_%d_%s", time.Now().UnixMilli(), req.FileName)
	if _, err := s.store.Save(context.Background(), audioSource, text, req.OwnerID); err != nil {
		// Persistence is best-effort relative to the transcription result.
		s.logger.Warn("could not save transcription", "error", err)
	}

	return &dto.TranscribeResponse{
		Success:       true,
		Transcription: text,
	}, nil
}
