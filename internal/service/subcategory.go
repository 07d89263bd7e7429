package service

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"
)

// SubcategoryInput creates a subcategory under an existing category.
type SubcategoryInput struct {
	Name        string
	Description string
	CategoryID  int64
}

// SubcategoryUpdate changes selected fields; nil fields are left as they are.
type SubcategoryUpdate struct {
	Name        *string
	Description *string
	CategoryID  *int64
}

// SubcategoryService manages subcategories.
type SubcategoryService interface {
	List(ctx context.Context) ([]model.Subcategory, error)
	Get(ctx context.Context, id int64) (*model.Subcategory, error)
	Create(ctx context.Context, in SubcategoryInput) (*model.Subcategory, error)
	Update(ctx context.Context, id int64, in SubcategoryUpdate) (*model.Subcategory, error)
	Delete(ctx context.Context, id int64) error
}

type subcategoryService struct {
	subcategories repository.SubcategoryRepository
	categories    repository.CategoryRepository
}

// NewSubcategoryService constructs a SubcategoryService.
func NewSubcategoryService(subcategories repository.SubcategoryRepository, categories repository.CategoryRepository) SubcategoryService {
	return &subcategoryService{subcategories: subcategories, categories: categories}
}

func (s *subcategoryService) List(ctx context.Context) ([]model.Subcategory, error) {
	return s.subcategories.List(ctx)
}

func (s *subcategoryService) Get(ctx context.Context, id int64) (*model.Subcategory, error) {
	if id <= 0 {
		return nil, invalid("id must be positive")
	}
	sc, err := s.subcategories.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr("subcategory", err)
	}
	return sc, nil
}

func (s *subcategoryService) requireCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalid("category_id is required")
	}
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(repoErr("category", err), ErrNotFound) {
			return invalid("category %d does not exist", id)
		}
		return err
	}
	return nil
}

func (s *subcategoryService) Create(ctx context.Context, in SubcategoryInput) (*model.Subcategory, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if err := s.requireCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	created, err := s.subcategories.Create(ctx, &model.Subcategory{
		Name:        name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		return nil, repoErr("subcategory", err)
	}
	return created, nil
}

func (s *subcategoryService) Update(ctx context.Context, id int64, in SubcategoryUpdate) (*model.Subcategory, error) {
	sc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		sc.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		sc.Description = *in.Description
	}
	if in.CategoryID != nil && *in.CategoryID != sc.CategoryID {
		if err := s.requireCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		sc.CategoryID = *in.CategoryID
	}
	updated, err := s.subcategories.Update(ctx, sc)
	if err != nil {
		return nil, repoErr("subcategory", err)
	}
	return updated, nil
}

func (s *subcategoryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalid("id must be positive")
	}
	return repoErr("subcategory", s.subcategories.Delete(ctx, id))
}
