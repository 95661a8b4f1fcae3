package services

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"voicescribe/internal/api/v1/dto"
	"voicescribe/internal/app/model"
	"voicescribe/internal/app/repository"
)

// DefaultHistoryLimit caps GET /history when no limit is given.
const DefaultHistoryLimit = 10

// HistoryServiceImpl implements HistoryService over the persistence facade.
type HistoryServiceImpl struct {
	store  *repository.Facade
	logger *slog.Logger
}

// NewHistoryService creates the history service.
func NewHistoryService(store *repository.Facade, logger *slog.Logger) HistoryService {
	return &HistoryServiceImpl{store: store, logger: logger}
}

// List returns up to limit records from the active backend, newest first.
func (s *HistoryServiceImpl) List(ctx context.Context, limit int) ([]dto.TranscriptionView, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	records, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	return lo.Map(records, func(r model.TranscriptionRecord, _ int) dto.TranscriptionView {
		return dto.TranscriptionView{
			ID:          r.ID,
			AudioSource: r.AudioSource,
			Text:        r.Text,
			OwnerID:     r.OwnerID,
			CreatedAt:   r.CreatedAt,
		}
	}), nil
}

// Clear deletes every record from the active backend.
func (s *HistoryServiceImpl) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("history cleared")
	return nil
}
