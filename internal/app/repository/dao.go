package repository

import (
	"context"

	"voicescribe/internal/app/model"
)

// TranscriptionDAO is one persistence backend for the history log.
// Implementations must keep records ordered newest first on ListRecent.
type TranscriptionDAO interface {
	// Insert stores a record whose ID and CreatedAt are already assigned.
	Insert(ctx context.Context, record *model.TranscriptionRecord) error

	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.TranscriptionRecord, error)

	// Clear deletes every record from this backend.
	Clear(ctx context.Context) error

	// Ping reports whether the backend is currently reachable.
	Ping(ctx context.Context) error

	// Close releases the backend's resources.
	Close() error
}
