package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"learnhub-checkout/internal/handler/httperr"
	"learnhub-checkout/internal/pkg/cookie"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/jwt"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserIDKey         = "user_id"
	IdempotencyKeyHeader = "Idempotency-Key"
)

// TokenValidator resolves an access token to the learner it was issued for.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

type jwtValidator struct {
	svc *jwt.Service
}

func NewJWTValidator(svc *jwt.Service) TokenValidator {
	return &jwtValidator{svc: svc}
}

func (v *jwtValidator) ValidateToken(token string) (uuid.UUID, error) {
	claims, err := v.svc.ValidateToken(token)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID, nil
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetAccessToken(c)
		if token == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimSpace(h[len("Bearer "):])
			}
		}
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthenticated, "Access token required", nil)
			return
		}

		userID, err := m.validator.ValidateToken(token)
		if err != nil {
			slog.Warn("token validation failed", "error", err)
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Session is the only way handlers hand the caller to the pipeline.
func Session(c *gin.Context) (shared.Session, bool) {
	id, ok := GetUserID(c)
	if !ok || id == uuid.Nil {
		return shared.Session{}, false
	}
	return shared.NewSession(id), true
}
