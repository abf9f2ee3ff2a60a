package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/archia-server/internal/model"
)

// StoryStore is a mock type for the model.StoryStore type.
type StoryStore struct {
	mock.Mock
}

func (m *StoryStore) Create(ctx context.Context, story model.Story) (model.Story, error) {
	ret := m.Called(ctx, story)
	if rf, ok := ret.Get(0).(func(context.Context, model.Story) model.Story); ok {
		return rf(ctx, story), ret.Error(1)
	}
	return ret.Get(0).(model.Story), ret.Error(1)
}

func (m *StoryStore) GetByID(ctx context.Context, id int64) (model.Story, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(model.Story), ret.Error(1)
}

func (m *StoryStore) GetByTitle(ctx context.Context, title string) (model.Story, error) {
	ret := m.Called(ctx, title)
	return ret.Get(0).(model.Story), ret.Error(1)
}

func (m *StoryStore) List(ctx context.Context) ([]model.Story, error) {
	ret := m.Called(ctx)
	r0, _ := ret.Get(0).([]model.Story)
	return r0, ret.Error(1)
}

func (m *StoryStore) IncrementLikes(ctx context.Context, id int64, username string) (int64, error) {
	ret := m.Called(ctx, id, username)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewStoryStore creates a new instance of StoryStore. It also registers a
// cleanup function to assert the mocks expectations.
func NewStoryStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoryStore {
	m := &StoryStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
