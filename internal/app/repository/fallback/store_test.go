package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voicescribe/internal/app/model"
	"voicescribe/internal/app/repository"
)

func newTestStore(t *testing.T) *Store {
	store, err := NewStore(filepath.Join(t.TempDir(), "data", "fallback-db.json"))
	require.NoError(t, err)
	return store
}

func record(i int, base time.Time) *model.TranscriptionRecord {
	return &model.TranscriptionRecord{
		ID:          fmt.Sprintf("rec-%03d", i),
		AudioSource: fmt.Sprintf("uploaded_%d_clip.wav", i),
		Text:        fmt.Sprintf("text %d", i),
		CreatedAt:   base.Add(time.Duration(i) * time.Second),
	}
}

func TestStore_Interface(t *testing.T) {
	var _ repository.TranscriptionDAO = (*Store)(nil)
}

func TestStore_CreatesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback-db.json")
	_, err := NewStore(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "users")
	assert.Contains(t, doc, "transcriptions")
}

func TestStore_InsertAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Insert(ctx, record(i, base)))
	}

	records, err := store.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "rec-002", records[0].ID, "newest first")
	assert.Equal(t, "rec-000", records[2].ID)
}

func TestStore_ListRespectsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 15; i++ {
		require.NoError(t, store.Insert(ctx, record(i, base)))
	}

	records, err := store.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 10)
	assert.Equal(t, "rec-014", records[0].ID)
}

func TestStore_EvictsOldestBeyondCapacity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < MaxRecords+1; i++ {
		require.NoError(t, store.Insert(ctx, record(i, base)))
	}

	records, err := store.ListRecent(ctx, MaxRecords+10)
	require.NoError(t, err)
	require.Len(t, records, MaxRecords)

	// rec-000 is the oldest and must be gone; the 50 newest remain in
	// descending creation order.
	assert.Equal(t, "rec-050", records[0].ID)
	assert.Equal(t, "rec-001", records[len(records)-1].ID)
	for i := 1; i < len(records); i++ {
		assert.True(t, !records[i-1].CreatedAt.Before(records[i].CreatedAt))
	}
}

func TestStore_ClearThenListEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Insert(ctx, record(i, base)))
	}
	require.NoError(t, store.Clear(ctx))

	records, err := store.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback-db.json")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, record(1, time.Now().UTC())))

	reopened, err := NewStore(path)
	require.NoError(t, err)
	records, err := reopened.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "rec-001", records[0].ID)
}

func TestStore_RecoversFromCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback-db.json")
	store, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	require.NoError(t, store.Insert(context.Background(), record(1, time.Now().UTC())))
	records, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// Concurrent inserts must not lose records: the document mutation is
// serialized, so every insert lands.
func TestStore_ConcurrentInsertsLoseNothing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Insert(ctx, record(i, base)))
		}(i)
	}
	wg.Wait()

	records, err := store.ListRecent(ctx, MaxRecords)
	require.NoError(t, err)
	assert.Len(t, records, 20)
}
