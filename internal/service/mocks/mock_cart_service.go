package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront/internal/model"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	return result[*model.Cart](m.Called(ctx, sessionID))
}

func (m *MockCartService) Add(ctx context.Context, sessionID string, productID int64, qty int) (*model.Cart, error) {
	return result[*model.Cart](m.Called(ctx, sessionID, productID, qty))
}

func (m *MockCartService) SetQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*model.Cart, error) {
	return result[*model.Cart](m.Called(ctx, sessionID, productID, qty))
}

func (m *MockCartService) Remove(ctx context.Context, sessionID string, productID int64) (*model.Cart, error) {
	return result[*model.Cart](m.Called(ctx, sessionID, productID))
}

func (m *MockCartService) Clear(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Preview(cart *model.Cart) *model.Invoice {
	args := m.Called(cart)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.Invoice)
}

func (m *MockInvoiceService) Checkout(ctx context.Context, sessionID string) (*model.Invoice, error) {
	return result[*model.Invoice](m.Called(ctx, sessionID))
}

func (m *MockInvoiceService) Get(ctx context.Context, id int64) (*model.Invoice, error) {
	return result[*model.Invoice](m.Called(ctx, id))
}
