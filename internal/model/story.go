package model

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StoryStore defines persistence operations for stories.
type StoryStore interface {
	Create(ctx context.Context, story Story) (Story, error)
	GetByID(ctx context.Context, id int64) (Story, error)
	GetByTitle(ctx context.Context, title string) (Story, error)
	List(ctx context.Context) ([]Story, error)
	// IncrementLikes atomically adds one like and returns the new count.
	// It returns ErrNotFound when the story does not exist.
	IncrementLikes(ctx context.Context, id int64, username string) (int64, error)
}

// Story is a narrative work posted by a registered user.
type Story struct {
	ID        int64
	Title     string
	Content   string
	Author    string
	Category  Category
	PostedBy  string
	Likes     int64
	CreatedAt time.Time
}

// CreateStoryParams contains parameters to create a story.
type CreateStoryParams struct {
	Title    string
	Content  string
	Author   string
	Category string
	PostedBy string
}

// Category enumerates story kinds.
type Category string

const (
	CategoryMystery     Category = "Mystery"
	CategoryLegend      Category = "Legend"
	CategoryDocumentary Category = "Documentary"
)

// Categories lists every known category in display order.
var Categories = []Category{CategoryMystery, CategoryLegend, CategoryDocumentary}

// ParseCategory maps user input to a known category ignoring case and
// surrounding whitespace. It is safe for concurrent use.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewValidationError("category", "must not be empty")
	}

	// A Caser keeps state between calls and cannot be shared.
	c := Category(cases.Title(language.English).String(s))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}

	return "", NewValidationError("category", "must be one of Mystery, Legend, Documentary")
}
