package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// EngagementService is a mock type for the handler.EngagementService type.
type EngagementService struct {
	mock.Mock
}

func (m *EngagementService) Like(ctx context.Context, storyID int64, actingUser string) (int64, error) {
	ret := m.Called(ctx, storyID, actingUser)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewEngagementService creates a new instance of EngagementService. It also
// registers a cleanup function to assert the mocks expectations.
func NewEngagementService(t interface {
	mock.TestingT
	Cleanup(func())
}) *EngagementService {
	m := &EngagementService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
