package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/archia-server/internal/logger"
	"github.com/dtroode/archia-server/internal/model"
)

const bearerPrefix = "Bearer "

// SessionResolver resolves the session behind a bearer token.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (model.Session, error)
}

// Authenticate resolves bearer tokens into a Session stored in the request
// context. Requests without a valid token carry a logged-out Session.
type Authenticate struct {
	resolver       SessionResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(resolver SessionResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{resolver: resolver, contextManager: contextManager, logger: logger}
}

// Handle attaches the request Session. Only storage failures abort.
func (m *Authenticate) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := model.Session{}

		if token := BearerToken(c.Request); token != "" {
			resolved, err := m.resolver.Resolve(c.Request.Context(), token)
			switch {
			case err == nil:
				session = resolved
			case errors.Is(err, model.ErrUnauthenticated):
				m.logger.Debug("Authenticate middleware: token rejected",
					"path", c.Request.URL.Path,
					"error", err.Error())
			default:
				m.logger.Error("Authenticate middleware: failed to resolve session",
					"path", c.Request.URL.Path,
					"error", err.Error())
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
				return
			}
		}

		c.Request = c.Request.WithContext(m.contextManager.SetSessionToContext(c.Request.Context(), session))
		c.Next()
	}
}

// RequireSession aborts with 401 unless the request Session is logged in.
func (m *Authenticate) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := m.contextManager.GetSessionFromContext(c.Request.Context())
		if !session.IsLoggedIn() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}
