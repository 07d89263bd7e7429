package mocks

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) product(args mock.Arguments) (*model.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) page(args mock.Arguments) (*repository.PageResult[model.Product], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Product]), args.Error(1)
}

func (m *MockProductRepository) list(args mock.Arguments) ([]model.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	return m.product(m.Called(ctx, p))
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockProductRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Product], error) {
	return m.page(m.Called(ctx, pq))
}

func (m *MockProductRepository) ListBySubcategory(ctx context.Context, subcategoryID int64, pq repository.PageQuery) (*repository.PageResult[model.Product], error) {
	return m.page(m.Called(ctx, subcategoryID, pq))
}

func (m *MockProductRepository) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	return m.list(m.Called(ctx, keyword))
}

func (m *MockProductRepository) All(ctx context.Context) ([]model.Product, error) {
	return m.list(m.Called(ctx))
}

func (m *MockProductRepository) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	return m.product(m.Called(ctx, p))
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id int64) (*model.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}
