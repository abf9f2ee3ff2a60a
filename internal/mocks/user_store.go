package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/archia-server/internal/model"
)

// UserStore is a mock type for the model.UserStore type.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	ret := m.Called(ctx, username)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) Create(ctx context.Context, username string, passwordHash []byte) (model.User, error) {
	ret := m.Called(ctx, username, passwordHash)
	if rf, ok := ret.Get(0).(func(context.Context, string, []byte) model.User); ok {
		return rf(ctx, username, passwordHash), ret.Error(1)
	}
	return ret.Get(0).(model.User), ret.Error(1)
}

// NewUserStore creates a new instance of UserStore. It also registers a
// cleanup function to assert the mocks expectations.
func NewUserStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserStore {
	m := &UserStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
