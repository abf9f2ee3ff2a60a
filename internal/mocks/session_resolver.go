package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/archia-server/internal/model"
)

// SessionResolver is a mock type for the middleware.SessionResolver type.
type SessionResolver struct {
	mock.Mock
}

func (m *SessionResolver) Resolve(ctx context.Context, token string) (model.Session, error) {
	ret := m.Called(ctx, token)
	return ret.Get(0).(model.Session), ret.Error(1)
}

// NewSessionResolver creates a new instance of SessionResolver. It also
// registers a cleanup function to assert the mocks expectations.
func NewSessionResolver(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionResolver {
	m := &SessionResolver{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
