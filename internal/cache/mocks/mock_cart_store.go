package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront/internal/model"
)

// MockCartStore records calls. Update applies fn to the cart given as the
// first return value, mirroring the real store.
type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartStore) Update(ctx context.Context, sessionID string, fn func(*model.Cart) error) (*model.Cart, error) {
	args := m.Called(ctx, sessionID, fn)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	cart, _ := args.Get(0).(*model.Cart)
	if cart == nil {
		cart = &model.Cart{SessionID: sessionID, Items: []model.CartItem{}}
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (m *MockCartStore) Delete(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}
