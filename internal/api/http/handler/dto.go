package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/archia-server/internal/model"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

type sessionResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
}

type createStoryRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

type storyResponse struct {
	ID        int64     `json:"story_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	PostedBy  string    `json:"posted_by"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

type likeResponse struct {
	StoryID int64 `json:"story_id"`
	Likes   int64 `json:"likes"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

func toStoryResponse(s model.Story) storyResponse {
	return storyResponse{
		ID:        s.ID,
		Title:     s.Title,
		Content:   s.Content,
		Author:    s.Author,
		Category:  string(s.Category),
		PostedBy:  s.PostedBy,
		Likes:     s.Likes,
		CreatedAt: s.CreatedAt,
	}
}
