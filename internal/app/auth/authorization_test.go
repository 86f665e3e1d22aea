package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/app/repositories/memory"
	"github.com/yigit/atauni/internal/pkg/apperrors"
	jwtauth "github.com/yigit/atauni/internal/pkg/auth"
)

type gateFixture struct {
	gate *AuthorizationService
	jwt  *jwtauth.JWTService
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	require.NoError(t, repos.UserRepository.Create(ctx, &models.User{ID: "u1", Username: "admin", Email: "admin@ata.edu.tr", Role: models.RoleAdmin}))
	require.NoError(t, repos.UserRepository.Create(ctx, &models.User{ID: "u2", Username: "writer", Email: "writer@ata.edu.tr", Role: models.RoleWriter}))
	require.NoError(t, repos.StudentRepository.Create(ctx, &models.Student{ID: "s1", StudentNo: "20250001", TCNo: "1", Status: models.StatusApproved}))

	jwt := jwtauth.NewJWTService(jwtauth.JWTConfig{SecretKey: "gate", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	return &gateFixture{
		gate: NewAuthorizationService(jwt, repos.UserRepository, repos.StudentRepository),
		jwt:  jwt,
	}
}

func (f *gateFixture) token(t *testing.T, subject string, kind jwtauth.TokenType) string {
	t.Helper()
	token, _, err := f.jwt.GenerateToken(subject, kind)
	require.NoError(t, err)
	return token
}

func TestAuthenticateResolvesPrincipals(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()

	p, err := f.gate.Authenticate(ctx, f.token(t, "admin", jwtauth.TokenTypeStaff), CapabilityAdmin)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.Staff.ID)
	assert.Nil(t, p.Student)

	p, err = f.gate.Authenticate(ctx, f.token(t, "writer", jwtauth.TokenTypeStaff), CapabilityStaff)
	require.NoError(t, err)
	assert.Equal(t, "writer", p.Staff.Username)

	p, err = f.gate.Authenticate(ctx, f.token(t, "20250001", jwtauth.TokenTypeStudent), CapabilityStudent)
	require.NoError(t, err)
	assert.Equal(t, "s1", p.Student.ID)

	p, err = f.gate.Authenticate(ctx, "", CapabilityAnonymous)
	require.NoError(t, err)
	assert.True(t, p.IsAnonymous())
}

func TestAuthenticateRejectsWrongTokenKind(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()

	_, err := f.gate.Authenticate(ctx, f.token(t, "20250001", jwtauth.TokenTypeStudent), CapabilityStaff)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = f.gate.Authenticate(ctx, f.token(t, "20250001", jwtauth.TokenTypeStudent), CapabilityAdmin)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	// a staff subject that happens to look like a student number
	_, err = f.gate.Authenticate(ctx, f.token(t, "admin", jwtauth.TokenTypeStaff), CapabilityStudent)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestAuthenticateRequiresAdmin(t *testing.T) {
	f := newGateFixture(t)

	_, err := f.gate.Authenticate(context.Background(), f.token(t, "writer", jwtauth.TokenTypeStaff), CapabilityAdmin)
	assert.ErrorIs(t, err, apperrors.ErrAdminRequired)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAuthenticateBadTokens(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()

	_, err := f.gate.Authenticate(ctx, "garbage", CapabilityStaff)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = f.gate.Authenticate(ctx, f.token(t, "ghost", jwtauth.TokenTypeStaff), CapabilityStaff)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = f.gate.Authenticate(ctx, f.token(t, "20259999", jwtauth.TokenTypeStudent), CapabilityStudent)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	expired := jwtauth.NewJWTService(jwtauth.JWTConfig{SecretKey: "gate", AccessTokenExp: -time.Minute})
	token, _, err := expired.GenerateToken("admin", jwtauth.TokenTypeStaff)
	require.NoError(t, err)
	_, err = f.gate.Authenticate(ctx, token, CapabilityStaff)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "admin", CapabilityAdmin.String())
	assert.Equal(t, "anonymous", CapabilityAnonymous.String())
}
