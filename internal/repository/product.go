package repository

import (
	"context"

	"storefront/internal/model"
)

// Product sort keys accepted in PageQuery.Sort. Unknown keys fall back to SortNewest.
const (
	SortNewest    = "newest"
	SortRating    = "rating"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
)

// ProductRepository persists products. Reads join the subcategory name.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Product], error)
	ListBySubcategory(ctx context.Context, subcategoryID int64, pq PageQuery) (*PageResult[model.Product], error)
	// Search matches keyword case-insensitively against name, brand and description.
	Search(ctx context.Context, keyword string) ([]model.Product, error)
	// All returns every product ordered by ID.
	All(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

// InvoiceRepository persists invoices.
type InvoiceRepository interface {
	// Create stores the invoice and its lines and decrements product stock in
	// one transaction. It fails with ErrInsufficientStock and stores nothing
	// when any line exceeds the stock on hand.
	Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error)
	FindByID(ctx context.Context, id int64) (*model.Invoice, error)
}
