// Package auth decides which principal a request acts as and whether it may proceed.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/app/repositories"
	"github.com/yigit/atauni/internal/pkg/apperrors"
	jwtauth "github.com/yigit/atauni/internal/pkg/auth"
	"github.com/yigit/atauni/internal/pkg/logger"
)

// Capability is the access level an endpoint requires
type Capability int

const (
	CapabilityAnonymous Capability = iota
	CapabilityStudent
	CapabilityStaff
	CapabilityAdmin
)

func (c Capability) String() string {
	switch c {
	case CapabilityStudent:
		return "student"
	case CapabilityStaff:
		return "staff"
	case CapabilityAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Principal is the resolved caller. At most one of Staff and Student is set.
type Principal struct {
	Staff   *models.User
	Student *models.Student
}

// IsAnonymous reports whether no identity was resolved
func (p *Principal) IsAnonymous() bool {
	return p == nil || (p.Staff == nil && p.Student == nil)
}

// TokenValidator verifies a bearer token and returns its claims
type TokenValidator interface {
	ValidateToken(token string) (*jwtauth.Claims, error)
}

var (
	errTokenExpired = &apperrors.CustomError{Err: apperrors.ErrTokenExpired, Message: "Token has expired"}
	errTokenInvalid = &apperrors.CustomError{Err: apperrors.ErrTokenInvalid, Message: "Invalid token"}
	errWrongKind    = &apperrors.CustomError{Err: apperrors.ErrTokenInvalid, Message: "Token was not issued for this resource"}
	errUnknownOwner = &apperrors.CustomError{Err: apperrors.ErrTokenInvalid, Message: "Token owner no longer exists"}
)

// AuthorizationService resolves bearer tokens into principals and enforces capabilities
type AuthorizationService struct {
	tokens      TokenValidator
	userRepo    repositories.IUserRepository
	studentRepo repositories.IStudentRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(tokens TokenValidator, userRepo repositories.IUserRepository, studentRepo repositories.IStudentRepository) *AuthorizationService {
	return &AuthorizationService{
		tokens:      tokens,
		userRepo:    userRepo,
		studentRepo: studentRepo,
	}
}

// Authenticate validates token and returns the principal when it satisfies required.
// Anonymous endpoints never look at the token.
func (s *AuthorizationService) Authenticate(ctx context.Context, token string, required Capability) (*Principal, error) {
	if required == CapabilityAnonymous {
		return &Principal{}, nil
	}

	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpiredToken) {
			return nil, errTokenExpired
		}
		return nil, errTokenInvalid
	}

	if required == CapabilityStudent {
		if !claims.IsStudent() {
			return nil, errWrongKind
		}
		student, err := s.studentRepo.GetByStudentNo(ctx, claims.Subject)
		if err != nil {
			return nil, s.ownerError(err, claims)
		}
		return &Principal{Student: student}, nil
	}

	if claims.IsStudent() {
		return nil, errWrongKind
	}
	user, err := s.userRepo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, s.ownerError(err, claims)
	}

	if required == CapabilityAdmin && !user.IsAdmin() {
		return nil, apperrors.ErrAdminRequired
	}
	return &Principal{Staff: user}, nil
}

func (s *AuthorizationService) ownerError(err error, claims *jwtauth.Claims) error {
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return errUnknownOwner
	}
	logger.Error().Err(err).Str("subject", claims.Subject).Msg("Error resolving token owner")
	return fmt.Errorf("failed to resolve token owner: %w", err)
}
