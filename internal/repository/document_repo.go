package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// DocumentRepository defines operations for per-user JSON documents
type DocumentRepository interface {
	GetOrCreate(ctx context.Context, ownerID uuid.UUID, kind string, defaultData json.RawMessage) (json.RawMessage, error)
	Upsert(ctx context.Context, ownerID uuid.UUID, kind string, data json.RawMessage) error
}

type documentRepository struct {
	db DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db DB) DocumentRepository {
	return &documentRepository{db: db}
}

// GetOrCreate returns the document payload for (ownerID, kind), inserting
// defaultData first if no document exists yet. Runs as a single statement:
// the no-op DO UPDATE makes RETURNING yield the existing row on conflict, so
// two concurrent first reads cannot both insert.
func (r *documentRepository) GetOrCreate(ctx context.Context, ownerID uuid.UUID, kind string, defaultData json.RawMessage) (json.RawMessage, error) {
	sql := `INSERT INTO documents (id, user_id, kind, data)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (user_id, kind) DO UPDATE SET data = documents.data
            RETURNING data`
	var data []byte
	err := r.db.QueryRow(ctx, sql, uuid.New(), ownerID, kind, defaultData).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create document: %w", err)
	}
	return data, nil
}

// Upsert fully replaces the document payload for (ownerID, kind), inserting
// if absent. Last write wins: there is no version check, so of two concurrent
// writers to the same pair one overwrite is silently discarded.
func (r *documentRepository) Upsert(ctx context.Context, ownerID uuid.UUID, kind string, data json.RawMessage) error {
	sql := `INSERT INTO documents (id, user_id, kind, data)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (user_id, kind) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`
	_, err := r.db.Exec(ctx, sql, uuid.New(), ownerID, kind, data)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}
