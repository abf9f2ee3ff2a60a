package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/archia-server/internal/logger"
	"github.com/dtroode/archia-server/internal/metrics"
	"github.com/dtroode/archia-server/internal/model"
	"github.com/dtroode/archia-server/internal/telemetry"
)

type Story struct {
	storyStore model.StoryStore
	storage    model.Storage
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

// NewStory creates the story service. storage may be nil, in which case
// archives are rendered on demand and never persisted.
func NewStory(
	storyStore model.StoryStore,
	storage model.Storage,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Story {
	return &Story{
		storyStore: storyStore,
		storage:    storage,
		metrics:    metrics,
		logger:     logger,
	}
}

// Create validates params, then requires an authenticated poster, then
// inserts the story.
func (s *Story) Create(ctx context.Context, params model.CreateStoryParams) (model.Story, error) {
	ctx, span := telemetry.StartSpan(ctx, "story.create", trace.WithAttributes(
		attribute.String("layer", "service"),
		attribute.String("posted_by", params.PostedBy),
	))
	defer span.End()

	story, err := newStory(params)
	if err != nil {
		return model.Story{}, err
	}

	if params.PostedBy == "" {
		return model.Story{}, model.ErrUnauthenticated
	}

	saved, err := s.storyStore.Create(ctx, story)
	if errors.Is(err, model.ErrUnauthenticated) {
		return model.Story{}, model.ErrUnauthenticated
	}
	if err != nil {
		span.RecordError(err)
		s.logger.Error("Story service: failed to create story",
			"posted_by", params.PostedBy,
			"error", err.Error())
		return model.Story{}, fmt.Errorf("failed to create story: %w", err)
	}

	s.metrics.StoryCreated()
	s.logger.Info("Story service: story created",
		"story_id", saved.ID,
		"posted_by", saved.PostedBy)

	s.archive(ctx, saved)

	return saved, nil
}

func (s *Story) ListAll(ctx context.Context) ([]model.Story, error) {
	stories, err := s.storyStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

func (s *Story) GetByID(ctx context.Context, id int64) (model.Story, error) {
	if id <= 0 {
		return model.Story{}, model.ErrStoryNotFound
	}

	story, err := s.storyStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Story{}, model.ErrStoryNotFound
	}
	if err != nil {
		return model.Story{}, fmt.Errorf("failed to get story: %w", err)
	}
	return story, nil
}

// FindByTitle resolves a title to the earliest story carrying it.
func (s *Story) FindByTitle(ctx context.Context, title string) (model.Story, error) {
	if title == "" {
		return model.Story{}, model.ErrStoryNotFound
	}

	story, err := s.storyStore.GetByTitle(ctx, title)
	if errors.Is(err, model.ErrNotFound) {
		return model.Story{}, model.ErrStoryNotFound
	}
	if err != nil {
		return model.Story{}, fmt.Errorf("failed to find story by title: %w", err)
	}
	return story, nil
}

// Archive returns the markdown archive of a story. A missing archive is
// rendered from the current row and stored again.
func (s *Story) Archive(ctx context.Context, id int64) (io.ReadCloser, error) {
	story, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.storage != nil {
		key := archiveKey(id)
		exists, err := s.storage.Exists(ctx, key)
		if err != nil {
			s.logger.Warn("Story service: failed to check archive",
				"story_id", id,
				"error", err.Error())
		}
		if exists {
			reader, err := s.storage.Download(ctx, key)
			if err == nil {
				return reader, nil
			}
			s.logger.Warn("Story service: failed to download archive",
				"story_id", id,
				"error", err.Error())
		} else if err == nil {
			s.archive(ctx, story)
		}
	}

	return io.NopCloser(bytes.NewReader(RenderMarkdown(story))), nil
}

// archive uploads the markdown rendering of story. Failures are logged only.
func (s *Story) archive(ctx context.Context, story model.Story) {
	if s.storage == nil {
		return
	}

	if err := s.storage.Upload(ctx, archiveKey(story.ID), bytes.NewReader(RenderMarkdown(story))); err != nil {
		s.logger.Warn("Story service: failed to upload archive",
			"story_id", story.ID,
			"error", err.Error())
	}
}

func newStory(params model.CreateStoryParams) (model.Story, error) {
	if strings.TrimSpace(params.Title) == "" {
		return model.Story{}, model.NewValidationError("title", "must not be empty")
	}
	if strings.TrimSpace(params.Content) == "" {
		return model.Story{}, model.NewValidationError("content", "must not be empty")
	}
	category, err := model.ParseCategory(params.Category)
	if err != nil {
		return model.Story{}, err
	}

	author := strings.TrimSpace(params.Author)
	if author == "" {
		author = params.PostedBy
	}

	return model.Story{
		Title:    params.Title,
		Content:  params.Content,
		Author:   author,
		Category: category,
		PostedBy: params.PostedBy,
	}, nil
}

func archiveKey(id int64) string {
	return fmt.Sprintf("stories/%d.md", id)
}
