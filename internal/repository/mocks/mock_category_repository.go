package mocks

import (
	"context"

	"storefront/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) category(args mock.Arguments) (*model.Category, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	return m.category(m.Called(ctx, c))
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	return m.category(m.Called(ctx, id))
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *model.Category) (*model.Category, error) {
	return m.category(m.Called(ctx, c))
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockSubcategoryRepository struct {
	mock.Mock
}

func (m *MockSubcategoryRepository) subcategory(args mock.Arguments) (*model.Subcategory, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) Create(ctx context.Context, s *model.Subcategory) (*model.Subcategory, error) {
	return m.subcategory(m.Called(ctx, s))
}

func (m *MockSubcategoryRepository) FindByID(ctx context.Context, id int64) (*model.Subcategory, error) {
	return m.subcategory(m.Called(ctx, id))
}

func (m *MockSubcategoryRepository) FindByName(ctx context.Context, name string) (*model.Subcategory, error) {
	return m.subcategory(m.Called(ctx, name))
}

func (m *MockSubcategoryRepository) List(ctx context.Context) ([]model.Subcategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) Update(ctx context.Context, s *model.Subcategory) (*model.Subcategory, error) {
	return m.subcategory(m.Called(ctx, s))
}

func (m *MockSubcategoryRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
