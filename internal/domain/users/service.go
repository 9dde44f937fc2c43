package users

import (
	"context"
	"errors"

	"github.com/eventhub/server/internal/auth"
)

// ErrInvalidCredentials means the email exists but the password does not
// match. Callers translate this differently from ErrNotFound: an unknown
// email is a 404, a wrong password a 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register stores a new user with a hashed password. Field emptiness is not
// validated here; the store's constraints are the only gate.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, CreateParams{Name: name, Email: email, PasswordHash: hash})
}

// Login looks the user up by exact email and verifies the password.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Profile re-reads the current user by the identifier embedded in a token.
// The token's cached claims are never returned to the client directly.
func (s *Service) Profile(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}
