package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"banktaxi_sync/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertUserSQL = `INSERT INTO users (id, email, password_hash, name, created_at)
            VALUES ($1, $2, $3, $4, $5)`
	selectUserByEmailSQL = `SELECT id, email, password_hash, name, created_at FROM users WHERE email = $1`
	selectUserByIDSQL    = `SELECT id, email, password_hash, name, created_at FROM users WHERE id = $1`
)

func newTestUser() *model.User {
	return &model.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Alice",
		CreatedAt:    time.Now(),
	}
}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	user := newTestUser()

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs(user.ID, user.Email, user.PasswordHash, user.Name, user.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), user)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	user := newTestUser()

	// The storage-level unique constraint fires regardless of any prior
	// existence check, so the repo must translate it to the sentinel.
	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs(user.ID, user.Email, user.PasswordHash, user.Name, user.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})

	err = repo.Create(context.Background(), user)

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	want := newTestUser()

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
		WithArgs(want.Email).
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "name", "created_at"}).
			AddRow(want.ID, want.Email, want.PasswordHash, want.Name, want.CreatedAt))

	got, err := repo.FindByEmail(context.Background(), want.Email)

	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, want.Name, got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
		WithArgs("missing@x.com").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindByEmail(context.Background(), "missing@x.com")

	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByIDSQL)).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindByID(context.Background(), id)

	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
