package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const createCollectionsTable = `
    CREATE TABLE IF NOT EXISTS record_collections (
        name       TEXT PRIMARY KEY,
        payload    TEXT NOT NULL,
        updated_at TIMESTAMP NOT NULL
    )
`

// SQLStore keeps each collection as one JSON array row. It works on any
// sqlx driver that understands ON CONFLICT upserts (postgres, sqlite3).
type SQLStore struct {
	DB *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{DB: db}
}

// Migrate creates the collections table if it does not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, createCollectionsTable); err != nil {
		return fmt.Errorf("failed to create record_collections: %w", err)
	}
	return nil
}

func (s *SQLStore) ReadAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var payload string
	query := s.DB.Rebind(`SELECT payload FROM record_collections WHERE name = ?`)
	err := s.DB.GetContext(ctx, &payload, query, collection)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []json.RawMessage{}, nil
		}
		return nil, err
	}
	return decodeCollection([]byte(payload))
}

func (s *SQLStore) WriteAll(ctx context.Context, collection string, records []json.RawMessage) error {
	payload, err := encodeCollection(records)
	if err != nil {
		return err
	}
	query := s.DB.Rebind(`
        INSERT INTO record_collections (name, payload, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT (name)
        DO UPDATE SET
            payload = EXCLUDED.payload,
            updated_at = EXCLUDED.updated_at
    `)
	_, err = s.DB.ExecContext(ctx, query, collection, string(payload), time.Now().UTC())
	return err
}
