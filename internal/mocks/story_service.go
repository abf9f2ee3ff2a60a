package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/archia-server/internal/model"
)

// StoryService is a mock type for the handler.StoryService type.
type StoryService struct {
	mock.Mock
}

func (m *StoryService) Create(ctx context.Context, params model.CreateStoryParams) (model.Story, error) {
	ret := m.Called(ctx, params)
	return ret.Get(0).(model.Story), ret.Error(1)
}

func (m *StoryService) ListAll(ctx context.Context) ([]model.Story, error) {
	ret := m.Called(ctx)
	r0, _ := ret.Get(0).([]model.Story)
	return r0, ret.Error(1)
}

func (m *StoryService) GetByID(ctx context.Context, id int64) (model.Story, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(model.Story), ret.Error(1)
}

func (m *StoryService) FindByTitle(ctx context.Context, title string) (model.Story, error) {
	ret := m.Called(ctx, title)
	return ret.Get(0).(model.Story), ret.Error(1)
}

func (m *StoryService) Archive(ctx context.Context, id int64) (io.ReadCloser, error) {
	ret := m.Called(ctx, id)
	r0, _ := ret.Get(0).(io.ReadCloser)
	return r0, ret.Error(1)
}

// NewStoryService creates a new instance of StoryService. It also registers
// a cleanup function to assert the mocks expectations.
func NewStoryService(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoryService {
	m := &StoryService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
