package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coachcenter/internal/app/models"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/app/repositories"
	"github.com/yigit/coachcenter/internal/pkg/auth"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

// NotAuthorizedMessage is sent for every rejected request, whatever the reason.
const NotAuthorizedMessage = "Not authorized to access this route"

// TokenVerifier checks a bearer token and returns the administrator id it carries
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AdminFinder looks up administrators by id
type AdminFinder interface {
	FindByID(ctx context.Context, id string) (*models.Admin, error)
}

// GuardResult is the outcome of authenticating a request: Authenticated or Rejected.
type GuardResult interface {
	guardResult()
}

// Authenticated carries the verified administrator id. Admin is nil when the
// token is valid but the administrator no longer exists.
type Authenticated struct {
	AdminID string
	Admin   *models.Admin
}

// Rejected explains why a request was turned away. The reason is logged, never sent.
type Rejected struct {
	Reason string
}

func (Authenticated) guardResult() {}
func (Rejected) guardResult()      {}

// currentAdminKey is the gin context key holding the Authenticated result.
const currentAdminKey = "coachcenter.currentAdmin"

// AuthMiddleware guards administrator routes
type AuthMiddleware struct {
	tokens TokenVerifier
	admins AdminFinder
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokens TokenVerifier, admins AdminFinder) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		admins: admins,
	}
}

// Authenticate inspects the Authorization header of r
func (m *AuthMiddleware) Authenticate(r *http.Request) GuardResult {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Rejected{Reason: "authorization header missing"}
	}

	token, err := auth.ExtractBearerToken(header)
	if err != nil {
		return Rejected{Reason: "malformed authorization header"}
	}

	adminID, err := m.tokens.Verify(token)
	if err != nil {
		return Rejected{Reason: err.Error()}
	}

	admin, err := m.admins.FindByID(r.Context(), adminID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			logger.Error().Err(err).Str("adminID", adminID).Msg("Admin lookup failed during authentication")
			return Rejected{Reason: "admin lookup failed"}
		}
		logger.Warn().Str("adminID", adminID).Msg("Valid token for an admin that no longer exists")
		admin = nil
	}

	return Authenticated{AdminID: adminID, Admin: admin}
}

// RequireAdmin rejects requests without a valid administrator token
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch result := m.Authenticate(c.Request).(type) {
		case Authenticated:
			c.Set(currentAdminKey, result)
			c.Next()
		case Rejected:
			logger.Debug().Str("path", c.Request.URL.Path).Str("reason", result.Reason).Msg("Request rejected by guard")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(NotAuthorizedMessage))
		}
	}
}

// CurrentAdmin returns the authentication stored by RequireAdmin
func CurrentAdmin(c *gin.Context) (Authenticated, bool) {
	v, ok := c.Get(currentAdminKey)
	if !ok {
		return Authenticated{}, false
	}
	result, ok := v.(Authenticated)
	return result, ok
}
