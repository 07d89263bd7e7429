package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"storefront/internal/cache"
	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// InvoiceService prices carts and turns them into persisted invoices.
type InvoiceService interface {
	// Preview prices cart without persisting anything.
	Preview(cart *model.Cart) *model.Invoice
	// Checkout re-prices the session cart against current products, stores
	// the invoice while decrementing stock, and takes the invoiced items out
	// of the cart.
	Checkout(ctx context.Context, sessionID string) (*model.Invoice, error)
	Get(ctx context.Context, id int64) (*model.Invoice, error)
}

type invoiceService struct {
	invoices   repository.InvoiceRepository
	products   repository.ProductRepository
	carts      cache.CartStore
	taxPercent float64
	now        func() time.Time
	logger     log.FieldLogger
}

// NewInvoiceService constructs an InvoiceService charging taxPercent on subtotals.
func NewInvoiceService(invoices repository.InvoiceRepository, products repository.ProductRepository, carts cache.CartStore, taxPercent float64, logger log.FieldLogger) InvoiceService {
	return &invoiceService{
		invoices:   invoices,
		products:   products,
		carts:      carts,
		taxPercent: taxPercent,
		now:        time.Now,
		logger:     logging.OrDiscard(logger).WithField("component", "invoices"),
	}
}

// price builds invoice lines and totals from items. Money is rounded to cents
// per line and again on the totals.
func price(items []model.CartItem, taxPercent float64) *model.Invoice {
	inv := &model.Invoice{Lines: make([]model.InvoiceLine, 0, len(items)), TaxPercent: taxPercent}
	var subtotal float64
	for _, it := range items {
		line := model.InvoiceLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
			Total:     it.LineTotal(),
		}
		subtotal += line.Total
		inv.Lines = append(inv.Lines, line)
	}
	inv.Subtotal = model.RoundMoney(subtotal)
	inv.Tax = model.RoundMoney(inv.Subtotal * taxPercent / 100)
	inv.Total = model.RoundMoney(inv.Subtotal + inv.Tax)
	return inv
}

func (s *invoiceService) Preview(cart *model.Cart) *model.Invoice {
	var items []model.CartItem
	if cart != nil {
		items = cart.Items
	}
	inv := price(items, s.taxPercent)
	if cart != nil {
		inv.SessionID = cart.SessionID
	}
	inv.CreatedAt = s.now().UTC()
	return inv
}

func (s *invoiceService) Checkout(ctx context.Context, sessionID string) (*model.Invoice, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.Count() == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]model.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		p, err := s.products.FindByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(repoErr("product", err), ErrNotFound) {
				return nil, invalid("product %d is no longer available", it.ProductID)
			}
			return nil, err
		}
		if it.Quantity > p.Quantity {
			return nil, fmt.Errorf("%w: %s has %d left", ErrInsufficientStock, p.Name, p.Quantity)
		}
		items = append(items, model.CartItem{ProductID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image, Quantity: it.Quantity})
	}

	now := s.now().UTC()
	inv := price(items, s.taxPercent)
	inv.SessionID = sessionID
	inv.CreatedAt = now
	inv.Number = invoiceNumber(now)

	stored, err := s.invoices.Create(ctx, inv)
	if err != nil {
		return nil, repoErr("invoice", err)
	}

	if _, err := s.carts.Update(ctx, sessionID, func(c *model.Cart) error {
		settle(c, inv.Lines)
		return nil
	}); err != nil {
		s.logger.WithFields(log.Fields{"event": "cart_clear_failed", "invoice": stored.Number}).WithError(err).Error("invoice stored but cart not cleared")
	}
	s.logger.WithFields(log.Fields{
		"event":      "checkout",
		"invoice":    stored.Number,
		"invoice_id": stored.ID,
		"total":      stored.Total,
	}).Info("checkout completed")
	return stored, nil
}

// settle takes the invoiced quantities out of c. Items added while the
// checkout was running, or quantity above what was invoiced, stay behind.
func settle(c *model.Cart, lines []model.InvoiceLine) {
	invoiced := make(map[int64]int, len(lines))
	for _, l := range lines {
		invoiced[l.ProductID] += l.Quantity
	}
	kept := make([]model.CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		it.Quantity -= invoiced[it.ProductID]
		if it.Quantity > 0 {
			kept = append(kept, it)
		}
	}
	c.Items = kept
}

// invoiceNumber is INV-<yyyymmdd>-<8 hex chars>.
func invoiceNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "INV-" + t.Format("20060102") + "-" + suffix
}

func (s *invoiceService) Get(ctx context.Context, id int64) (*model.Invoice, error) {
	if id <= 0 {
		return nil, invalid("id must be positive")
	}
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr("invoice", err)
	}
	return inv, nil
}
