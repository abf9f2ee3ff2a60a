//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/archia-server/internal/model"
	repo "github.com/dtroode/archia-server/internal/repository/postgres"
	"github.com/dtroode/archia-server/internal/service"
	"github.com/dtroode/archia-server/internal/testutil"
	"github.com/dtroode/archia-server/internal/token"
)

func TestScenario_RegisterLoginWriteLike(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	log := testutil.MakeNoopLogger()

	storyRepo := repo.NewStoryRepository(conn)
	sessions := service.NewSession(token.NewJWT("integration-secret", "archia-test"), repo.NewSessionRepository(conn), time.Hour, log)
	auth := service.NewAuth(repo.NewUserRepository(conn), sessions, bcrypt.MinCost, nil, log)
	stories := service.NewStory(storyRepo, nil, nil, log)
	engagement := service.NewEngagement(storyRepo, nil, log)

	username := uniqueName("bob")
	_, err := auth.Register(ctx, username, "pw123")
	require.NoError(t, err)

	_, err = auth.Login(ctx, model.LoginParams{Username: username, Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	_, err = auth.Login(ctx, model.LoginParams{Username: uniqueName("nobody"), Password: "x"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	issued, err := auth.Login(ctx, model.LoginParams{Username: username, Password: "pw123"})
	require.NoError(t, err)

	session, err := sessions.Resolve(ctx, issued.Token)
	require.NoError(t, err)
	require.True(t, session.IsLoggedIn())
	current, _ := session.CurrentUser()
	assert.Equal(t, username, current)

	title := uniqueName("Old Road")
	created, err := stories.Create(ctx, model.CreateStoryParams{
		Title:    title,
		Content:  "The road was older than the village.",
		Category: "legend",
		PostedBy: current,
	})
	require.NoError(t, err)
	assert.Equal(t, username, created.Author)

	all, err := stories.ListAll(ctx)
	require.NoError(t, err)
	var listed bool
	for _, s := range all {
		if s.ID == created.ID {
			listed = true
		}
	}
	assert.True(t, listed)

	var likes int64
	for range 3 {
		likes, err = engagement.Like(ctx, created.ID, current)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), likes)

	byTitle, err := stories.FindByTitle(ctx, title)
	require.NoError(t, err)
	assert.Equal(t, int64(3), byTitle.Likes)

	require.NoError(t, auth.Logout(ctx, issued.Token))
	_, err = sessions.Resolve(ctx, issued.Token)
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
}
