package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"banktaxi_sync/internal/model"
	"banktaxi_sync/internal/repository"
	"banktaxi_sync/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken    = errors.New("user with this email already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	docRepo  repository.DocumentRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, docRepo repository.DocumentRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		docRepo:  docRepo,
		jwtUtil:  jwtUtil,
	}
}

// Register creates a new user account, seeds its default documents and issues
// a session token. The email existence check here is a courtesy for a clean
// error message; the users.email unique constraint is what actually prevents
// duplicates when two registrations race.
func (s *authService) Register(ctx context.Context, email, password, name string) (*model.User, string, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	// Seed both documents with their defaults so the first sync finds data
	// waiting. GetOrCreate on read covers any account this step missed.
	for _, kind := range []string{model.DocumentKindBank, model.DocumentKindTaxi} {
		defaultData, _ := model.DefaultPayload(kind)
		if _, err := s.docRepo.GetOrCreate(ctx, user.ID, kind, defaultData); err != nil {
			return nil, "", fmt.Errorf("failed to seed %s document: %w", kind, err)
		}
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Printf("ERROR: User %s (ID: %s) created, but failed to generate token: %v", user.Email, user.ID, err)
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a JWT token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrWrongPassword
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
