package dto

import "time"

// TranscribeResponse is the success body of POST /transcribe.
type TranscribeResponse struct {
	Success       bool   `json:"success"`
	Transcription string `json:"transcription"`
}

// TranscriptionView is one history entry as returned by GET /history.
type TranscriptionView struct {
	ID          string    `json:"id"`
	AudioSource string    `json:"audio_source"`
	Text        string    `json:"text"`
	OwnerID     string    `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryResponse is the success body of GET /history.
type HistoryResponse struct {
	Success        bool                `json:"success"`
	Transcriptions []TranscriptionView `json:"transcriptions"`
}

// MessageResponse is the success body of DELETE /history.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the failure body of every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HistoryQuery carries the optional limit for GET /history.
type HistoryQuery struct {
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=50"`
}
