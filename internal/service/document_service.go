package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"banktaxi_sync/internal/model"
	"banktaxi_sync/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrUnknownKind    = errors.New("unknown document kind")
	ErrMissingPayload = errors.New("document payload is required")
)

// DocumentService provides per-user document storage with upsert semantics
type DocumentService interface {
	Get(ctx context.Context, ownerID uuid.UUID, kind string) (json.RawMessage, error)
	Save(ctx context.Context, ownerID uuid.UUID, kind string, data json.RawMessage) error
}

type documentService struct {
	docRepo repository.DocumentRepository
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(docRepo repository.DocumentRepository) DocumentService {
	return &documentService{docRepo: docRepo}
}

// Get returns the owner's document of the given kind, creating it with the
// kind's default payload on first access
func (s *documentService) Get(ctx context.Context, ownerID uuid.UUID, kind string) (json.RawMessage, error) {
	defaultData, ok := model.DefaultPayload(kind)
	if !ok {
		return nil, ErrUnknownKind
	}

	data, err := s.docRepo.GetOrCreate(ctx, ownerID, kind, defaultData)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s document: %w", kind, err)
	}
	return data, nil
}

// Save replaces the owner's document of the given kind wholesale. The previous
// payload is discarded, never merged.
func (s *documentService) Save(ctx context.Context, ownerID uuid.UUID, kind string, data json.RawMessage) error {
	if !model.IsValidDocumentKind(kind) {
		return ErrUnknownKind
	}
	if len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return ErrMissingPayload
	}

	if err := s.docRepo.Upsert(ctx, ownerID, kind, data); err != nil {
		return fmt.Errorf("failed to save %s document: %w", kind, err)
	}
	return nil
}
