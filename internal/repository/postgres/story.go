package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/archia-server/internal/model"
)

var _ model.StoryStore = (*StoryRepository)(nil)

const storyColumns = `story_id, title, content, author, category, posted_by, likes, created_at`

type StoryRepository struct {
	db *Connection
}

func NewStoryRepository(db *Connection) *StoryRepository {
	return &StoryRepository{
		db: db,
	}
}

func (r *StoryRepository) Create(ctx context.Context, story model.Story) (model.Story, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO stories (title, content, author, category, posted_by)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + storyColumns

	saved, err := scanStory(r.db.QueryRow(ctx, query,
		story.Title, story.Content, story.Author, string(story.Category), story.PostedBy,
	))
	if err != nil {
		if _, ok := constraintViolation(err, codeForeignKeyViolation); ok {
			return model.Story{}, model.ErrUnauthenticated
		}
		return model.Story{}, fmt.Errorf("failed to create story: %w", classify(err))
	}

	return saved, nil
}

func (r *StoryRepository) GetByID(ctx context.Context, id int64) (model.Story, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + storyColumns + ` FROM stories WHERE story_id = $1`

	story, err := scanStory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return model.Story{}, fmt.Errorf("failed to get story by id: %w", classify(err))
	}

	return story, nil
}

// GetByTitle returns the earliest story with the exact title.
func (r *StoryRepository) GetByTitle(ctx context.Context, title string) (model.Story, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + storyColumns + ` FROM stories WHERE title = $1 ORDER BY story_id ASC LIMIT 1`

	story, err := scanStory(r.db.QueryRow(ctx, query, title))
	if err != nil {
		return model.Story{}, fmt.Errorf("failed to get story by title: %w", classify(err))
	}

	return story, nil
}

func (r *StoryRepository) List(ctx context.Context) ([]model.Story, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + storyColumns + ` FROM stories ORDER BY story_id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", classify(err))
	}
	defer rows.Close()

	stories := make([]model.Story, 0)
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", classify(err))
		}
		stories = append(stories, story)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", classify(err))
	}

	return stories, nil
}

// IncrementLikes bumps the counter with a single UPDATE ... RETURNING so the
// row lock serializes concurrent likes on one story. The audit row is written
// in the same transaction; on any failure neither change is visible.
func (r *StoryRepository) IncrementLikes(ctx context.Context, id int64, username string) (int64, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var likes int64
	err := pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		const increment = `UPDATE stories SET likes = likes + 1 WHERE story_id = $1 RETURNING likes`
		if err := tx.QueryRow(ctx, increment, id).Scan(&likes); err != nil {
			return err
		}

		const audit = `INSERT INTO story_likes (story_id, username) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, audit, id, username); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if _, ok := constraintViolation(err, codeForeignKeyViolation); ok {
			return 0, model.ErrUnauthenticated
		}
		return 0, fmt.Errorf("failed to increment likes: %w", classify(err))
	}

	return likes, nil
}

func scanStory(row pgx.Row) (model.Story, error) {
	var s model.Story
	var category string
	err := row.Scan(
		&s.ID, &s.Title, &s.Content, &s.Author, &category, &s.PostedBy, &s.Likes, &s.CreatedAt,
	)
	if err != nil {
		return model.Story{}, err
	}
	s.Category = model.Category(category)
	return s, nil
}
