package service

import (
	"context"
	"encoding/json"
	"sync"

	"banktaxi_sync/internal/model"
	"banktaxi_sync/internal/repository"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory UserRepository with an email unique constraint,
// mirroring what the users table enforces.
type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	u := *user
	r.byEmail[user.Email] = &u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

type docKey struct {
	owner uuid.UUID
	kind  string
}

// fakeDocumentRepo is an in-memory DocumentRepository with the same
// get-or-create and last-write-wins upsert semantics as the documents table.
type fakeDocumentRepo struct {
	mu   sync.Mutex
	docs map[docKey]json.RawMessage
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[docKey]json.RawMessage)}
}

func (r *fakeDocumentRepo) GetOrCreate(_ context.Context, ownerID uuid.UUID, kind string, defaultData json.RawMessage) (json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := docKey{owner: ownerID, kind: kind}
	if data, ok := r.docs[key]; ok {
		return data, nil
	}
	r.docs[key] = defaultData
	return defaultData, nil
}

func (r *fakeDocumentRepo) Upsert(_ context.Context, ownerID uuid.UUID, kind string, data json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[docKey{owner: ownerID, kind: kind}] = data
	return nil
}
