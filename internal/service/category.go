package service

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/storage"
)

// CategoryInput creates a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryUpdate changes selected fields; nil or blank fields are left as they are.
type CategoryUpdate struct {
	Name        *string
	Description *string
}

// CategoryService manages top-level categories and their images.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Get(ctx context.Context, id int64) (*model.Category, error)
	// Create uploads img and stores the category. The image is required.
	Create(ctx context.Context, in CategoryInput, img *storage.Upload) (*model.Category, error)
	// Update applies in; a non-nil img replaces the stored image.
	Update(ctx context.Context, id int64, in CategoryUpdate, img *storage.Upload) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	categories repository.CategoryRepository
	images     storage.ImageStore
	logger     log.FieldLogger
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories repository.CategoryRepository, images storage.ImageStore, logger log.FieldLogger) CategoryService {
	return &categoryService{
		categories: categories,
		images:     images,
		logger:     logging.OrDiscard(logger).WithField("component", "categories"),
	}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	if id <= 0 {
		return nil, invalid("id must be positive")
	}
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr("category", err)
	}
	return c, nil
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput, img *storage.Upload) (*model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if img == nil {
		return nil, invalid("image is required")
	}
	url, err := s.images.Upload(ctx, *img)
	if err != nil {
		return nil, imageErr(err)
	}
	created, err := s.categories.Create(ctx, &model.Category{Name: name, Description: in.Description, Image: url})
	if err != nil {
		s.dropImage(ctx, url)
		return nil, repoErr("category", err)
	}
	return created, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, in CategoryUpdate, img *storage.Upload) (*model.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	// The old image goes only once the row points at the new one.
	oldImage := c.Image
	if img != nil {
		url, err := s.images.Upload(ctx, *img)
		if err != nil {
			return nil, imageErr(err)
		}
		c.Image = url
	}
	updated, err := s.categories.Update(ctx, c)
	if err != nil {
		if img != nil {
			s.dropImage(ctx, c.Image)
		}
		return nil, repoErr("category", err)
	}
	if img != nil {
		s.dropImage(ctx, oldImage)
	}
	return updated, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return repoErr("category", err)
	}
	s.dropImage(ctx, c.Image)
	return nil
}

// dropImage deletes url and only logs on failure.
func (s *categoryService) dropImage(ctx context.Context, url string) {
	if err := s.images.Delete(ctx, url); err != nil {
		s.logger.WithFields(log.Fields{"event": "image_delete_failed", "url": url}).WithError(err).Warn("could not delete image")
	}
}
