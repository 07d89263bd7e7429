package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront/internal/model"
	"storefront/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	return result[*model.User](m.Called(ctx, in))
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	return result[*service.LoginResult](m.Called(ctx, username, password))
}

func (m *MockAuthService) Profile(ctx context.Context, username string) (*model.User, error) {
	return result[*model.User](m.Called(ctx, username))
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, limit, offset int) (*service.ListResult[model.User], error) {
	return result[*service.ListResult[model.User]](m.Called(ctx, limit, offset))
}

func (m *MockUserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return result[*model.User](m.Called(ctx, id))
}

func (m *MockUserService) Create(ctx context.Context, in service.UserInput) (*model.User, error) {
	return result[*model.User](m.Called(ctx, in))
}

func (m *MockUserService) Update(ctx context.Context, id int64, in service.UserUpdate) (*model.User, error) {
	return result[*model.User](m.Called(ctx, id, in))
}

func (m *MockUserService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
