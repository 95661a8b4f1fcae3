package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"voicescribe/internal/app/errors"
	"voicescribe/internal/app/model"
	"voicescribe/internal/metrics"
)

// Facade hides backend selection from callers. It exclusively owns record
// creation: ids and timestamps are assigned here, never by callers, and a
// record lands on exactly one backend.
type Facade struct {
	primary  TranscriptionDAO // nil when no primary store is configured
	fallback TranscriptionDAO
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewFacade creates a facade over an optional primary backend and a required
// fallback backend.
func NewFacade(primary, fallback TranscriptionDAO, logger *slog.Logger, m *metrics.Metrics) *Facade {
	return &Facade{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		metrics:  m,
	}
}

// Save builds a record from the completed transcription and persists it,
// trying the primary backend first and falling back to the secondary. The
// record is returned even when both backends fail; in that case the error is
// persistence-kind and the caller decides whether to surface it (the
// transcription response never does).
func (f *Facade) Save(ctx context.Context, audioSource, text, ownerID string) (*model.TranscriptionRecord, error) {
	record := &model.TranscriptionRecord{
		ID:          uuid.New().String(),
		AudioSource: audioSource,
		Text:        text,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	}

	if f.primary != nil {
		err := f.primary.Insert(ctx, record)
		if err == nil {
			f.metrics.PrimarySaves.Inc()
			f.logger.Info("transcription saved to primary store", "id", record.ID)
			return record, nil
		}
		f.logger.Warn("primary store rejected save, falling back", "id", record.ID, "error", err)
	}

	if err := f.fallback.Insert(ctx, record); err != nil {
		f.metrics.FailedSaves.Inc()
		return record, errors.Persistence(err)
	}
	f.metrics.FallbackSaves.Inc()
	f.logger.Info("transcription saved to fallback store", "id", record.ID)
	return record, nil
}

// ListRecent reads up to limit records from the currently active backend,
// newest first.
func (f *Facade) ListRecent(ctx context.Context, limit int) ([]model.TranscriptionRecord, error) {
	return f.active(ctx).ListRecent(ctx, limit)
}

// Clear deletes every record from the currently active backend only.
func (f *Facade) Clear(ctx context.Context) error {
	f.metrics.HistoryClears.Inc()
	return f.active(ctx).Clear(ctx)
}

// Close closes both backends.
func (f *Facade) Close() error {
	var err error
	if f.primary != nil {
		err = f.primary.Close()
	}
	if cerr := f.fallback.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// active makes the backend selection once per operation: the primary when it
// is configured and reachable, otherwise the fallback.
func (f *Facade) active(ctx context.Context) TranscriptionDAO {
	if f.primary == nil {
		return f.fallback
	}
	if err := f.primary.Ping(ctx); err != nil {
		f.logger.Warn("primary store unreachable, using fallback", "error", err)
		return f.fallback
	}
	return f.primary
}
