package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/storage"
)

// ProductInput creates a product. Subcategory is matched by name.
type ProductInput struct {
	Name        string
	Price       float64
	Description string
	Subcategory string
	Brand       string
	Rating      float64
	Quantity    int
}

// ProductUpdate changes selected fields; nil pointers and blank strings keep
// the stored value.
type ProductUpdate struct {
	Name        *string
	Price       *float64
	Description *string
	Subcategory *string
	Brand       *string
	Rating      *float64
	Quantity    *int
}

// ProductService manages the catalogue.
type ProductService interface {
	List(ctx context.Context, limit, offset int, sort string) (*ListResult[model.Product], error)
	ListBySubcategory(ctx context.Context, subcategoryID int64, limit, offset int) (*ListResult[model.Product], error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	// Search matches keyword against name, brand and description, ignoring case.
	Search(ctx context.Context, keyword string) ([]model.Product, error)
	Create(ctx context.Context, in ProductInput, img *storage.Upload) (*model.Product, error)
	Update(ctx context.Context, id int64, in ProductUpdate, img *storage.Upload) (*model.Product, error)
	// Delete removes the product. Failing to delete its image is logged, not returned.
	Delete(ctx context.Context, id int64) error
	// All returns the whole catalogue ordered by id.
	All(ctx context.Context) ([]model.Product, error)
	// Export writes the whole catalogue to w as an XLSX workbook.
	Export(ctx context.Context, w io.Writer) error
}

type productService struct {
	products      repository.ProductRepository
	subcategories repository.SubcategoryRepository
	images        storage.ImageStore
	logger        log.FieldLogger
}

// NewProductService constructs a ProductService.
func NewProductService(products repository.ProductRepository, subcategories repository.SubcategoryRepository, images storage.ImageStore, logger log.FieldLogger) ProductService {
	return &productService{
		products:      products,
		subcategories: subcategories,
		images:        images,
		logger:        logging.OrDiscard(logger).WithField("component", "products"),
	}
}

func (s *productService) List(ctx context.Context, limit, offset int, sort string) (*ListResult[model.Product], error) {
	limit, offset = normalizePage(limit, offset)
	res, err := s.products.List(ctx, repository.PageQuery{Limit: limit, Offset: offset, Sort: sort})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Product]{Items: res.Items, Total: res.Total}, nil
}

func (s *productService) ListBySubcategory(ctx context.Context, subcategoryID int64, limit, offset int) (*ListResult[model.Product], error) {
	if subcategoryID <= 0 {
		return nil, invalid("subcategory id must be positive")
	}
	if _, err := s.subcategories.FindByID(ctx, subcategoryID); err != nil {
		return nil, repoErr("subcategory", err)
	}
	limit, offset = normalizePage(limit, offset)
	res, err := s.products.ListBySubcategory(ctx, subcategoryID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Product]{Items: res.Items, Total: res.Total}, nil
}

func (s *productService) Get(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, invalid("id must be positive")
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr("product", err)
	}
	return p, nil
}

func (s *productService) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, invalid("keyword is required")
	}
	return s.products.Search(ctx, keyword)
}

func (s *productService) All(ctx context.Context) ([]model.Product, error) {
	return s.products.All(ctx)
}

func (s *productService) resolveSubcategory(ctx context.Context, name string) (*model.Subcategory, error) {
	sc, err := s.subcategories.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(repoErr("subcategory", err), ErrNotFound) {
			return nil, invalid("subcategory %q does not exist", name)
		}
		return nil, err
	}
	return sc, nil
}

func validateProduct(p *model.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return invalid("name is required")
	case p.Price < 0:
		return invalid("price must not be negative")
	case p.Rating < 0 || p.Rating > 5:
		return invalid("rating must be between 0 and 5")
	case p.Quantity < 0:
		return invalid("quantity must not be negative")
	}
	return nil
}

func (s *productService) Create(ctx context.Context, in ProductInput, img *storage.Upload) (*model.Product, error) {
	p := &model.Product{
		Name:        strings.TrimSpace(in.Name),
		Price:       model.RoundMoney(in.Price),
		Description: in.Description,
		Brand:       in.Brand,
		Rating:      in.Rating,
		Quantity:    in.Quantity,
		CreatedAt:   time.Now().UTC(),
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Subcategory) == "" {
		return nil, invalid("subcategory is required")
	}
	if img == nil {
		return nil, invalid("image is required")
	}
	sc, err := s.resolveSubcategory(ctx, in.Subcategory)
	if err != nil {
		return nil, err
	}
	p.SubcategoryID = sc.ID
	p.SubcategoryName = sc.Name

	url, err := s.images.Upload(ctx, *img)
	if err != nil {
		return nil, imageErr(err)
	}
	p.Image = url

	created, err := s.products.Create(ctx, p)
	if err != nil {
		s.dropImage(ctx, url)
		return nil, repoErr("product", err)
	}
	s.logger.WithFields(log.Fields{"event": "product_created", "product_id": created.ID}).Info("product created")
	return created, nil
}

func (s *productService) Update(ctx context.Context, id int64, in ProductUpdate, img *storage.Upload) (*model.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		p.Price = model.RoundMoney(*in.Price)
	}
	if in.Description != nil && *in.Description != "" {
		p.Description = *in.Description
	}
	if in.Brand != nil && *in.Brand != "" {
		p.Brand = *in.Brand
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if in.Subcategory != nil && strings.TrimSpace(*in.Subcategory) != "" {
		sc, err := s.resolveSubcategory(ctx, *in.Subcategory)
		if err != nil {
			return nil, err
		}
		p.SubcategoryID = sc.ID
		p.SubcategoryName = sc.Name
	}
	oldImage := p.Image
	if img != nil {
		url, err := s.images.Upload(ctx, *img)
		if err != nil {
			return nil, imageErr(err)
		}
		p.Image = url
	}

	updated, err := s.products.Update(ctx, p)
	if err != nil {
		if img != nil {
			s.dropImage(ctx, p.Image)
		}
		return nil, repoErr("product", err)
	}
	if img != nil {
		s.dropImage(ctx, oldImage)
	}
	return updated, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return repoErr("product", err)
	}
	s.dropImage(ctx, p.Image)
	s.logger.WithFields(log.Fields{"event": "product_deleted", "product_id": id}).Info("product deleted")
	return nil
}

func (s *productService) dropImage(ctx context.Context, url string) {
	if err := s.images.Delete(ctx, url); err != nil {
		s.logger.WithFields(log.Fields{"event": "image_delete_failed", "url": url}).WithError(err).Warn("could not delete image")
	}
}
