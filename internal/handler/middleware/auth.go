package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"universe-api/internal/handler/httperr"
	"universe-api/internal/pkg/jwt"
	"universe-api/internal/usecase/shared"
)

type AuthMiddleware struct {
	jwtService *jwt.Service
}

const ctxActorKey = "actor"

func NewAuthMiddleware(jwtService *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// RequireAuth validates the Bearer token and stores the acting user and
// project in the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			httperr.Abort(c, httperr.New(http.StatusUnauthorized, "access token required"), nil)
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("token validation failed in auth middleware", "error", err.Error())
			httperr.Abort(c, httperr.New(http.StatusUnauthorized, "invalid or expired token"), err)
			return
		}

		c.Set(ctxActorKey, shared.Actor{
			UserID:    claims.UserID,
			ProjectID: claims.ProjectID,
		})
		c.Next()
	}
}

func GetActor(c *gin.Context) (shared.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return shared.Actor{}, false
	}

	actor, ok := v.(shared.Actor)
	return actor, ok
}
