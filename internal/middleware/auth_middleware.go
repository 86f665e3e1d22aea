package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/yigit/atauni/internal/app/auth"
	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/pkg/apperrors"
	jwtauth "github.com/yigit/atauni/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	CurrentUserKey    = "currentUser"
	CurrentStudentKey = "currentStudent"
)

var errTokenMissing = &apperrors.CustomError{
	Err:     apperrors.ErrTokenInvalid,
	Message: "Authentication required",
	Details: map[string]interface{}{"reason": "Authorization header missing or malformed"},
}

// Authenticator resolves a bearer token into a principal
type Authenticator interface {
	Authenticate(ctx context.Context, token string, required auth.Capability) (*auth.Principal, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	gate Authenticator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(gate Authenticator) *AuthMiddleware {
	return &AuthMiddleware{gate: gate}
}

// RequireStaff accepts any staff token
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return m.require(auth.CapabilityStaff)
}

// RequireAdmin accepts staff tokens whose user has the admin role
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.require(auth.CapabilityAdmin)
}

// RequireStudent accepts student tokens only
func (m *AuthMiddleware) RequireStudent() gin.HandlerFunc {
	return m.require(auth.CapabilityStudent)
}

func (m *AuthMiddleware) require(capability auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := jwtauth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, errTokenMissing)
			c.Abort()
			return
		}

		principal, err := m.gate.Authenticate(c.Request.Context(), token, capability)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		if principal.Staff != nil {
			c.Set(CurrentUserKey, principal.Staff)
		}
		if principal.Student != nil {
			c.Set(CurrentStudentKey, principal.Student)
		}
		c.Next()
	}
}

// CurrentUser returns the staff user set by RequireStaff or RequireAdmin
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CurrentStudent returns the student set by RequireStudent
func CurrentStudent(c *gin.Context) (*models.Student, bool) {
	v, ok := c.Get(CurrentStudentKey)
	if !ok {
		return nil, false
	}
	student, ok := v.(*models.Student)
	return student, ok
}
