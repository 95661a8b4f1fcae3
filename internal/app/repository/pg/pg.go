// Package pg is the primary history backend on Postgres.
package pg

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"voicescribe/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id           TEXT PRIMARY KEY,
	audio_source TEXT NOT NULL,
	text         TEXT NOT NULL,
	owner_id     TEXT,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at ON transcriptions (created_at DESC);`

type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB opens a connection pool for the given connection string.
// The connection is not verified here; callers decide whether to Ping.
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}
	return &PostgresDB{db: db}, nil
}

// EnsureSchema creates the transcriptions table if it does not exist.
func (pdb *PostgresDB) EnsureSchema(ctx context.Context) error {
	if _, err := pdb.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("creating transcriptions table: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) Insert(ctx context.Context, record *model.TranscriptionRecord) error {
	insertSQL := `INSERT INTO transcriptions (id, audio_source, text, owner_id, created_at) VALUES ($1, $2, $3, $4, $5)`
	ownerID := sql.NullString{String: record.OwnerID, Valid: record.OwnerID != ""}
	if _, err := pdb.db.ExecContext(ctx, insertSQL, record.ID, record.AudioSource, record.Text, ownerID, record.CreatedAt); err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) ListRecent(ctx context.Context, limit int) ([]model.TranscriptionRecord, error) {
	query := `
		SELECT id, audio_source, text, owner_id, created_at
		FROM transcriptions
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := pdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var records []model.TranscriptionRecord
	for rows.Next() {
		var r model.TranscriptionRecord
		var ownerID sql.NullString
		if err := rows.Scan(&r.ID, &r.AudioSource, &r.Text, &ownerID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		r.OwnerID = ownerID.String
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return records, nil
}

func (pdb *PostgresDB) Clear(ctx context.Context) error {
	if _, err := pdb.db.ExecContext(ctx, `DELETE FROM transcriptions`); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) Ping(ctx context.Context) error {
	return pdb.db.PingContext(ctx)
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}
