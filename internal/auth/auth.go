// Package auth implements the admin credential and session logic.
//
// The session model is deliberately minimal: a single global token stored
// under one key. Logging in anywhere overwrites the token and invalidates any
// other open session. The first password ever submitted to Login claims the
// admin account (first-use bootstrap); deployments that want to avoid that
// can pre-set the admin_password key out of band.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"quay/internal/logger"
	"quay/internal/store"
)

var (
	// ErrIncorrectPassword is returned when the submitted password does not
	// match the stored credential.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrPasswordMismatch is returned when a new password and its
	// confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

type Service struct {
	kv     store.KV
	logger logger.Logger
}

func NewService(kv store.KV, log logger.Logger) *Service {
	return &Service{kv: kv, logger: log}
}

// Login validates the submitted password and issues a new session token.
//
// Bootstrap branch: when no password is stored yet, the submitted value is
// accepted unconditionally and becomes the admin password. Normal branch:
// bcrypt comparison against the stored hash. Either way a successful login
// overwrites the stored session token, so only the newest session is valid.
func (s *Service) Login(ctx context.Context, password string) (string, error) {
	stored, err := s.kv.Get(ctx, store.KeyAdminPassword)
	switch {
	case errors.Is(err, store.ErrNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.kv.Put(ctx, store.KeyAdminPassword, string(hash)); err != nil {
			return "", fmt.Errorf("failed to store password: %w", err)
		}
		s.logger.Info("admin password bootstrapped on first login")

	case err != nil:
		return "", fmt.Errorf("failed to read password: %w", err)

	default:
		if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) != nil {
			return "", ErrIncorrectPassword
		}
	}

	token, err := NewToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	if err := s.kv.Put(ctx, store.KeyAdminSession, token); err != nil {
		return "", fmt.Errorf("failed to store session token: %w", err)
	}
	return token, nil
}

// ChangePassword replaces the stored credential. The session token is left
// alone; the current session stays valid.
func (s *Service) ChangePassword(ctx context.Context, current, newPassword, confirm string) error {
	stored, err := s.kv.Get(ctx, store.KeyAdminPassword)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrIncorrectPassword
		}
		return fmt.Errorf("failed to read password: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(current)) != nil {
		return ErrIncorrectPassword
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.kv.Put(ctx, store.KeyAdminPassword, string(hash)); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}
	s.logger.Info("admin password changed")
	return nil
}

// Logout destroys the global session. Deleting a token that does not exist
// is not an error, so calling it twice is the same as calling it once.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, store.KeyAdminSession); err != nil {
		return fmt.Errorf("failed to delete session token: %w", err)
	}
	return nil
}

// CheckSession reports whether token matches the stored session token.
// Read-only; comparison is constant-time.
func (s *Service) CheckSession(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	stored, err := s.kv.Get(ctx, store.KeyAdminSession)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("failed to read session token", logger.Error(err))
		}
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1
}
