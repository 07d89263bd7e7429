package service

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"storefront/internal/cache"
	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// CartService mutates session carts. Every mutation returns the resulting cart.
type CartService interface {
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	// Add puts qty units of productID in the cart, merging with any existing
	// line. The line quantity is capped at the product's stock.
	Add(ctx context.Context, sessionID string, productID int64, qty int) (*model.Cart, error)
	// SetQuantity replaces a line's quantity; 0 removes the line.
	SetQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*model.Cart, error)
	Remove(ctx context.Context, sessionID string, productID int64) (*model.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type cartService struct {
	carts    cache.CartStore
	products repository.ProductRepository
	logger   log.FieldLogger
}

// NewCartService constructs a CartService.
func NewCartService(carts cache.CartStore, products repository.ProductRepository, logger log.FieldLogger) CartService {
	return &cartService{
		carts:    carts,
		products: products,
		logger:   logging.OrDiscard(logger).WithField("component", "cart"),
	}
}

func requireSession(sessionID string) error {
	if sessionID == "" {
		return invalid("cart session is required")
	}
	return nil
}

func (s *cartService) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	return s.carts.Get(ctx, sessionID)
}

func (s *cartService) product(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, invalid("product id must be positive")
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr("product", err)
	}
	return p, nil
}

func snapshot(item *model.CartItem, p *model.Product) {
	item.Name = p.Name
	item.Price = p.Price
	item.Image = p.Image
}

func (s *cartService) Add(ctx context.Context, sessionID string, productID int64, qty int) (*model.Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	if qty < 1 {
		return nil, invalid("quantity must be at least 1")
	}
	p, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Quantity <= 0 {
		return nil, ErrInsufficientStock
	}

	return s.update(ctx, sessionID, func(c *model.Cart) error {
		if i := c.Find(productID); i >= 0 {
			c.Items[i].Quantity = min(c.Items[i].Quantity+qty, p.Quantity)
			snapshot(&c.Items[i], p)
			return nil
		}
		item := model.CartItem{ProductID: productID, Quantity: min(qty, p.Quantity)}
		snapshot(&item, p)
		c.Items = append(c.Items, item)
		return nil
	})
}

func (s *cartService) SetQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*model.Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	if qty < 0 {
		return nil, invalid("quantity must not be negative")
	}
	if qty == 0 {
		return s.Remove(ctx, sessionID, productID)
	}
	p, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, sessionID, func(c *model.Cart) error {
		i := c.Find(productID)
		if i < 0 {
			return errCartItemNotFound
		}
		c.Items[i].Quantity = min(qty, p.Quantity)
		snapshot(&c.Items[i], p)
		if c.Items[i].Quantity == 0 {
			c.Remove(productID)
		}
		return nil
	})
}

// errCartItemNotFound aborts a cart update whose product is not in the cart.
var errCartItemNotFound = errors.New("cart item not in cart")

func (s *cartService) Remove(ctx context.Context, sessionID string, productID int64) (*model.Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	return s.update(ctx, sessionID, func(c *model.Cart) error {
		if !c.Remove(productID) {
			return errCartItemNotFound
		}
		return nil
	})
}

func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	return s.carts.Delete(ctx, sessionID)
}

func (s *cartService) update(ctx context.Context, sessionID string, fn func(*model.Cart) error) (*model.Cart, error) {
	cart, err := s.carts.Update(ctx, sessionID, fn)
	if err != nil {
		if errors.Is(err, errCartItemNotFound) {
			return nil, fmt.Errorf("cart item %w", ErrNotFound)
		}
		if errors.Is(err, cache.ErrConflict) {
			s.logger.WithFields(log.Fields{"event": "cart_conflict", "session_id": sessionID}).Warn("cart update retries exhausted")
			return nil, fmt.Errorf("cart %w", ErrConflict)
		}
		return nil, err
	}
	return cart, nil
}
