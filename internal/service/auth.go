package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/auth"
	"github.com/stitchwell/storefront/internal/hash"
	"github.com/stitchwell/storefront/internal/models"
	"github.com/stitchwell/storefront/internal/repo"
)

var ErrBadCredentials = errors.New("bad credentials") // 401

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password required", ErrValidation)
	}

	user, err := s.Repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrBadCredentials
		}
		return "", fmt.Errorf("load admin user: %w", err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", ErrBadCredentials
	}

	return auth.SignAccessToken(user.ID.String(), user.Role, s.JWTSecret)
}

// EnsureBootstrapAdmin creates the configured admin account if it does not
// exist yet. Called once on startup.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	if _, err := s.Repo.GetAdminByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up bootstrap admin: %w", err)
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash bootstrap admin password: %w", err)
	}

	err = s.Repo.CreateAdmin(ctx, &models.AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         "admin",
	})
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	return nil
}
