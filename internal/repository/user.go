package repository

import (
	"context"

	"storefront/internal/model"
)

// UserRepository persists storefront accounts.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.User], error)
	// Update overwrites every mutable column of the row identified by u.ID.
	Update(ctx context.Context, u *model.User) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}
