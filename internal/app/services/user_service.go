package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/app/models/dto"
	"github.com/yigit/atauni/internal/app/repositories"
	"github.com/yigit/atauni/internal/pkg/apperrors"
	"github.com/yigit/atauni/internal/pkg/auth"
)

// UserService defines staff user management
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string, actor *models.User) error
}

type userServiceImpl struct {
	userRepo      repositories.IUserRepository
	hasher        *auth.PasswordHasher
	seedAdminName string
	now           Clock
	logger        zerolog.Logger
}

// NewUserService creates a new user service. seedAdminName identifies the
// bootstrap admin that can be neither edited nor deleted.
func NewUserService(
	userRepo repositories.IUserRepository,
	hasher *auth.PasswordHasher,
	seedAdminName string,
	now Clock,
	logger zerolog.Logger,
) UserService {
	if now == nil {
		now = utcNow
	}
	return &userServiceImpl{
		userRepo:      userRepo,
		hasher:        hasher,
		seedAdminName: seedAdminName,
		now:           now,
		logger:        logger,
	}
}

func (s *userServiceImpl) List(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userServiceImpl) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ensureFree fails when another user already holds the username or email
func (s *userServiceImpl) ensureFree(ctx context.Context, selfID, username, email string) error {
	if username != "" {
		existing, err := s.userRepo.GetByUsername(ctx, username)
		switch {
		case err == nil && existing.ID != selfID:
			return apperrors.ErrUsernameExists
		case err != nil && !errors.Is(err, apperrors.ErrUserNotFound):
			return err
		}
	}
	if email != "" {
		existing, err := s.userRepo.GetByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != selfID:
			return apperrors.ErrEmailAlreadyExists
		case err != nil && !errors.Is(err, apperrors.ErrUserNotFound):
			return err
		}
	}
	return nil
}

func (s *userServiceImpl) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleWriter
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}
	if err := s.ensureFree(ctx, "", req.Username, req.Email); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:        newID(),
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		Role:      role,
		Password:  hashed,
		CreatedAt: s.now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("Staff user created")
	return user, nil
}

func (s *userServiceImpl) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Username == s.seedAdminName {
		return nil, apperrors.ErrSeedAdminImmutable
	}

	patch := models.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", *patch.Role))
	}

	var username, email string
	if patch.Username != nil {
		username = *patch.Username
	}
	if patch.Email != nil {
		email = *patch.Email
	}
	if err := s.ensureFree(ctx, user.ID, username, email); err != nil {
		return nil, err
	}

	if req.Password != nil {
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.Password = &hashed
	}

	patch.Apply(user)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a staff user; the bootstrap admin and the caller's own account are protected
func (s *userServiceImpl) Delete(ctx context.Context, id string, actor *models.User) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Username == s.seedAdminName {
		return apperrors.ErrSeedAdminImmutable
	}
	if actor != nil && actor.ID == user.ID {
		return apperrors.ErrSelfDeleteForbidden
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("username", user.Username).Msg("Staff user deleted")
	return nil
}
