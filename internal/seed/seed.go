// Package seed creates the records a fresh installation needs.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/app/repositories"
	"github.com/yigit/atauni/internal/pkg/apperrors"
	"github.com/yigit/atauni/internal/pkg/auth"
	"github.com/yigit/atauni/internal/pkg/helpers"
)

// Admin describes the bootstrap administrator
type Admin struct {
	Username string
	Email    string
	Password string
	FullName string
}

// CreateDefaultAdmin creates the bootstrap admin unless a user with its username already exists.
// It reports whether a user was created.
func CreateDefaultAdmin(ctx context.Context, userRepo repositories.IUserRepository, hasher *auth.PasswordHasher, admin Admin, lgr zerolog.Logger) (bool, error) {
	_, err := userRepo.GetByUsername(ctx, admin.Username)
	if err == nil {
		lgr.Info().Str("username", admin.Username).Msg("Admin user already exists, skipping creation")
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return false, fmt.Errorf("failed to check admin user: %w", err)
	}

	hashed, err := hasher.Hash(admin.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Username:  admin.Username,
		Email:     admin.Email,
		FullName:  admin.FullName,
		Role:      models.RoleAdmin,
		Password:  hashed,
		CreatedAt: helpers.NowUTC(),
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	lgr.Info().Str("username", user.Username).Msg("Default admin user created")
	return true, nil
}
