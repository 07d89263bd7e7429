package repository

import (
	"context"

	"storefront/internal/model"
)

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

// SubcategoryRepository persists subcategories.
// Reads join the parent category name.
type SubcategoryRepository interface {
	Create(ctx context.Context, s *model.Subcategory) (*model.Subcategory, error)
	FindByID(ctx context.Context, id int64) (*model.Subcategory, error)
	FindByName(ctx context.Context, name string) (*model.Subcategory, error)
	List(ctx context.Context) ([]model.Subcategory, error)
	Update(ctx context.Context, s *model.Subcategory) (*model.Subcategory, error)
	Delete(ctx context.Context, id int64) error
}
