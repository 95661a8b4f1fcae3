package services

import (
	"context"

	"voicescribe/internal/api/v1/dto"
)

// AudioTranscriber drives one upload-and-transcribe job to a terminal state.
// Implemented by the AssemblyAI client.
type AudioTranscriber interface {
	Transcribe(ctx context.Context, audio []byte, sourceLabel string) (string, error)
}

// TranscribeRequest is one validated-or-rejected upload from the HTTP layer.
type TranscribeRequest struct {
	FileName  string
	MediaType string
	Size      int64
	Data      []byte
	OwnerID   string
}

// TranscriptionService orchestrates validation, the provider job, and the
// best-effort history save.
type TranscriptionService interface {
	Transcribe(ctx context.Context, req *TranscribeRequest) (*dto.TranscribeResponse, error)
}

// HistoryService reads and clears the history log on the active backend.
type HistoryService interface {
	List(ctx context.Context, limit int) ([]dto.TranscriptionView, error)
	Clear(ctx context.Context) error
}
