// Package fallback is the secondary history backend: a bounded JSON document
// on local disk, used whenever the primary store is unavailable.
package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"voicescribe/internal/app/model"
)

// MaxRecords bounds each list in the document; inserting beyond the cap
// evicts the oldest entry.
const MaxRecords = 50

// UserRecord mirrors the identity entries kept alongside transcriptions in
// the fallback document. This package never creates them; the identity
// subsystem owns that list.
type UserRecord struct {
	ID        string    `json:"id"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type document struct {
	Users          []UserRecord                `json:"users"`
	Transcriptions []model.TranscriptionRecord `json:"transcriptions"`
}

// Store persists the document with whole-file read-modify-write. The mutation
// path is serialized behind mu: without it two interleaved saves can read the
// same prior document and silently drop a record.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by the file at path, creating an empty
// document (and parent directories) when none exists.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating fallback store directory: %w", err)
	}

	s := &Store{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write(document{Users: []UserRecord{}, Transcriptions: []model.TranscriptionRecord{}}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) read() document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return document{}
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}
	}
	return doc
}

func (s *Store) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding fallback document: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing fallback document: %w", err)
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, record *model.TranscriptionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	doc.Transcriptions = append([]model.TranscriptionRecord{*record}, doc.Transcriptions...)
	doc.Transcriptions = lo.Slice(doc.Transcriptions, 0, MaxRecords)
	return s.write(doc)
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]model.TranscriptionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.read().Transcriptions
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return lo.Slice(records, 0, limit), nil
}

// Clear removes every transcription while leaving the users list intact.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	doc.Transcriptions = []model.TranscriptionRecord{}
	return s.write(doc)
}

// Ping always succeeds; local disk is assumed reachable.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}
