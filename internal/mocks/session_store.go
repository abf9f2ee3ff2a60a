package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/archia-server/internal/model"
)

// SessionStore is a mock type for the model.SessionStore type.
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Create(ctx context.Context, record model.SessionRecord) error {
	ret := m.Called(ctx, record)
	return ret.Error(0)
}

func (m *SessionStore) GetByID(ctx context.Context, id uuid.UUID) (model.SessionRecord, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(model.SessionRecord), ret.Error(1)
}

func (m *SessionStore) Revoke(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

// NewSessionStore creates a new instance of SessionStore. It also registers a
// cleanup function to assert the mocks expectations.
func NewSessionStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionStore {
	m := &SessionStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
