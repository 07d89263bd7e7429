package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/storage"
)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]model.Category, error) {
	return result[[]model.Category](m.Called(ctx))
}

func (m *MockCategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	return result[*model.Category](m.Called(ctx, id))
}

func (m *MockCategoryService) Create(ctx context.Context, in service.CategoryInput, img *storage.Upload) (*model.Category, error) {
	return result[*model.Category](m.Called(ctx, in, img))
}

func (m *MockCategoryService) Update(ctx context.Context, id int64, in service.CategoryUpdate, img *storage.Upload) (*model.Category, error) {
	return result[*model.Category](m.Called(ctx, id, in, img))
}

func (m *MockCategoryService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockSubcategoryService struct {
	mock.Mock
}

func (m *MockSubcategoryService) List(ctx context.Context) ([]model.Subcategory, error) {
	return result[[]model.Subcategory](m.Called(ctx))
}

func (m *MockSubcategoryService) Get(ctx context.Context, id int64) (*model.Subcategory, error) {
	return result[*model.Subcategory](m.Called(ctx, id))
}

func (m *MockSubcategoryService) Create(ctx context.Context, in service.SubcategoryInput) (*model.Subcategory, error) {
	return result[*model.Subcategory](m.Called(ctx, in))
}

func (m *MockSubcategoryService) Update(ctx context.Context, id int64, in service.SubcategoryUpdate) (*model.Subcategory, error) {
	return result[*model.Subcategory](m.Called(ctx, id, in))
}

func (m *MockSubcategoryService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, limit, offset int, sort string) (*service.ListResult[model.Product], error) {
	return result[*service.ListResult[model.Product]](m.Called(ctx, limit, offset, sort))
}

func (m *MockProductService) ListBySubcategory(ctx context.Context, subcategoryID int64, limit, offset int) (*service.ListResult[model.Product], error) {
	return result[*service.ListResult[model.Product]](m.Called(ctx, subcategoryID, limit, offset))
}

func (m *MockProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	return result[*model.Product](m.Called(ctx, id))
}

func (m *MockProductService) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	return result[[]model.Product](m.Called(ctx, keyword))
}

func (m *MockProductService) Create(ctx context.Context, in service.ProductInput, img *storage.Upload) (*model.Product, error) {
	return result[*model.Product](m.Called(ctx, in, img))
}

func (m *MockProductService) Update(ctx context.Context, id int64, in service.ProductUpdate, img *storage.Upload) (*model.Product, error) {
	return result[*model.Product](m.Called(ctx, id, in, img))
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductService) All(ctx context.Context) ([]model.Product, error) {
	return result[[]model.Product](m.Called(ctx))
}

func (m *MockProductService) Export(ctx context.Context, w io.Writer) error {
	return m.Called(ctx, w).Error(0)
}
