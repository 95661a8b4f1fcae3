package model

import "time"

// SentinelNoSpeech is stored in place of an empty transcript so that a
// persisted record always carries non-empty text.
const SentinelNoSpeech = "No speech detected in audio."

// TranscriptionRecord is one completed transcription in the history log.
// ID and CreatedAt are assigned by the persistence layer, never by callers.
type TranscriptionRecord struct {
	ID          string    `json:"id"`
	AudioSource string    `json:"audio_source"`
	Text        string    `json:"text"`
	OwnerID     string    `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobStatus is the provider-side state of a transcription job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusError      JobStatus = "error"
)

// Terminal reports whether the status ends the polling loop.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusError
}

// Job tracks one in-flight provider job. It lives only for the duration of
// the request that created it and is never persisted.
type Job struct {
	ProviderID  string
	Status      JobStatus
	Text        string
	Error       string
	SubmittedAt time.Time
}
