package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	DocumentKindBank = "bank"
	DocumentKindTaxi = "taxi"
)

// Document is one user's stored JSON blob for a given kind.
// At most one document exists per (UserID, Kind) pair.
type Document struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Kind      string          `json:"kind"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsValidDocumentKind reports whether kind is one of the supported document kinds
func IsValidDocumentKind(kind string) bool {
	return kind == DocumentKindBank || kind == DocumentKindTaxi
}

// DefaultPayload returns the initial payload a fresh account gets for the given kind
func DefaultPayload(kind string) (json.RawMessage, bool) {
	switch kind {
	case DocumentKindBank:
		return json.RawMessage(`{"players": [], "adminPassword": "121212"}`), true
	case DocumentKindTaxi:
		return json.RawMessage(`{"shifts": [], "calls": [], "activeDrivers": [], "dispatcherPassword": "121212"}`), true
	}
	return nil, false
}
