package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/archia-server/internal/model"
)

// AuthService is a mock type for the handler.AuthService type.
type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, username, password string) (model.User, error) {
	ret := m.Called(ctx, username, password)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *AuthService) Login(ctx context.Context, params model.LoginParams) (model.IssuedSession, error) {
	ret := m.Called(ctx, params)
	return ret.Get(0).(model.IssuedSession), ret.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, token string) error {
	ret := m.Called(ctx, token)
	return ret.Error(0)
}

// NewAuthService creates a new instance of AuthService. It also registers a
// cleanup function to assert the mocks expectations.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
