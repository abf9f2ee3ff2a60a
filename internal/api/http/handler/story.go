package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/archia-server/internal/logger"
	"github.com/dtroode/archia-server/internal/model"
)

// StoryService defines story repository operations.
type StoryService interface {
	Create(ctx context.Context, params model.CreateStoryParams) (model.Story, error)
	ListAll(ctx context.Context) ([]model.Story, error)
	GetByID(ctx context.Context, id int64) (model.Story, error)
	FindByTitle(ctx context.Context, title string) (model.Story, error)
	Archive(ctx context.Context, id int64) (io.ReadCloser, error)
}

// EngagementService applies likes.
type EngagementService interface {
	Like(ctx context.Context, storyID int64, actingUser string) (int64, error)
}

// Story handles HTTP endpoints for stories and likes.
type Story struct {
	storyService      StoryService
	engagementService EngagementService
	contextManager    model.ContextManager
	logger            *logger.Logger
}

func NewStory(
	storyService StoryService,
	engagementService EngagementService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Story {
	return &Story{
		storyService:      storyService,
		engagementService: engagementService,
		contextManager:    contextManager,
		logger:            logger,
	}
}

func (h *Story) List(c *gin.Context) {
	stories, err := h.storyService.ListAll(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]storyResponse, 0, len(stories))
	for _, s := range stories {
		resp = append(resp, toStoryResponse(s))
	}
	c.JSON(http.StatusOK, resp)
}

// Create posts a story as the logged-in user.
func (h *Story) Create(c *gin.Context) {
	var req createStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	story, err := h.storyService.Create(c.Request.Context(), model.CreateStoryParams{
		Title:    req.Title,
		Content:  req.Content,
		Author:   req.Author,
		Category: req.Category,
		PostedBy: h.currentUser(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toStoryResponse(story))
}

func (h *Story) Get(c *gin.Context) {
	id, ok := storyID(c)
	if !ok {
		return
	}

	story, err := h.storyService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStoryResponse(story))
}

// GetByTitle serves deep links of the form /story/<title>.
func (h *Story) GetByTitle(c *gin.Context) {
	title := strings.TrimPrefix(c.Param("title"), "/")

	story, err := h.storyService.FindByTitle(c.Request.Context(), title)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStoryResponse(story))
}

// Like adds one like from the logged-in user.
func (h *Story) Like(c *gin.Context) {
	id, ok := storyID(c)
	if !ok {
		return
	}

	likes, err := h.engagementService.Like(c.Request.Context(), id, h.currentUser(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, likeResponse{StoryID: id, Likes: likes})
}

func (h *Story) Archive(c *gin.Context) {
	id, ok := storyID(c)
	if !ok {
		return
	}

	rc, err := h.storyService.Archive(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "text/markdown; charset=utf-8")
	c.Header("Content-Disposition", "inline; filename=\"story-"+strconv.FormatInt(id, 10)+".md\"")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		h.logger.Warn("Story handler: failed to write archive",
			"story_id", id,
			"error", err.Error())
	}
}

func (h *Story) currentUser(c *gin.Context) string {
	session, _ := h.contextManager.GetSessionFromContext(c.Request.Context())
	username, _ := session.CurrentUser()
	return username
}

func storyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handleError(c, model.NewValidationError("story_id", "must be an integer"))
		return 0, false
	}
	// No story has a non-positive id.
	if id <= 0 {
		handleError(c, model.ErrStoryNotFound)
		return 0, false
	}
	return id, true
}
