package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cleared-dev/siklus/internal/model"
	"github.com/cleared-dev/siklus/internal/store"
)

var (
	ErrDuplicateUser      = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("username and password are required")
)

// Service registers and authenticates users against a store. Passwords are
// stored as entered.
type Service struct {
	store  store.Store
	logger *zap.Logger
}

func NewService(s store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, logger: logger}
}

// Register creates a user with empty journals.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrInvalidInput
	}
	if err := store.ValidateUsername(username); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	_, err := s.store.Get(ctx, username)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrDuplicateUser, username)
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("looking up user: %w", err)
	}

	if err := s.store.Put(ctx, model.User{Username: username, Password: password}); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	s.logger.Info("user registered", zap.String("user", username))
	return nil
}

// Authenticate reports whether username exists with the given password.
// An unknown user is not an error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (bool, error) {
	u, err := s.store.Get(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, store.ErrInvalidUsername) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up user: %w", err)
	}
	return subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1, nil
}

// Login authenticates and records the user in sess.
func (s *Service) Login(ctx context.Context, sess *Session, username, password string) error {
	ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Warn("login failed", zap.String("user", username))
		return ErrInvalidCredentials
	}
	if err := sess.Login(username); err != nil {
		return err
	}
	s.logger.Info("logged in", zap.String("user", username))
	return nil
}
