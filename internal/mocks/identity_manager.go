package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kozydev/kozy-server/internal/model"
)

// IdentityManager is a mock implementation of service.IdentityManager.
type IdentityManager struct {
	mock.Mock
}

func (m *IdentityManager) CreateUser(ctx context.Context, email, password string) (model.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *IdentityManager) CheckPassword(user model.User, password string) bool {
	args := m.Called(user, password)
	return args.Bool(0)
}
