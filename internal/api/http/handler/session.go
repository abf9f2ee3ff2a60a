package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/archia-server/internal/model"
)

// Session reports the login state of the caller.
type Session struct {
	contextManager model.ContextManager
}

func NewSession(contextManager model.ContextManager) *Session {
	return &Session{contextManager: contextManager}
}

func (h *Session) Get(c *gin.Context) {
	session, _ := h.contextManager.GetSessionFromContext(c.Request.Context())
	username, _ := session.CurrentUser()

	c.JSON(http.StatusOK, sessionResponse{
		LoggedIn: session.IsLoggedIn(),
		Username: username,
	})
}
