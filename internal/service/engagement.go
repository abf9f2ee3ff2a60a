package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/archia-server/internal/logger"
	"github.com/dtroode/archia-server/internal/metrics"
	"github.com/dtroode/archia-server/internal/model"
	"github.com/dtroode/archia-server/internal/telemetry"
)

// Engagement applies likes to stories.
type Engagement struct {
	storyStore model.StoryStore
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

func NewEngagement(storyStore model.StoryStore, metrics *metrics.Metrics, logger *logger.Logger) *Engagement {
	return &Engagement{
		storyStore: storyStore,
		metrics:    metrics,
		logger:     logger,
	}
}

// Like adds one like from actingUser to the story and returns the new count.
// Repeated likes from the same user are each counted.
func (e *Engagement) Like(ctx context.Context, storyID int64, actingUser string) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "story.like", trace.WithAttributes(
		attribute.String("layer", "service"),
		attribute.Int64("story.id", storyID),
	))
	defer span.End()

	if actingUser == "" {
		return 0, model.ErrUnauthenticated
	}
	if storyID <= 0 {
		return 0, model.ErrStoryNotFound
	}

	likes, err := e.storyStore.IncrementLikes(ctx, storyID, actingUser)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return 0, model.ErrStoryNotFound
	case errors.Is(err, model.ErrUnauthenticated):
		return 0, model.ErrUnauthenticated
	case err != nil:
		span.RecordError(err)
		e.logger.Error("Engagement service: failed to like story",
			"story_id", storyID,
			"username", actingUser,
			"error", err.Error())
		return 0, fmt.Errorf("failed to like story %d: %w", storyID, err)
	}

	e.metrics.Liked()
	span.SetAttributes(attribute.Int64("story.likes", likes))
	e.logger.Debug("Engagement service: story liked",
		"story_id", storyID,
		"username", actingUser,
		"likes", likes)

	return likes, nil
}
