package postgres

import (
	"context"
	"database/sql"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"
)

const productSelect = `
	SELECT p.id, p.name, p.price, p.description, COALESCE(p.subcategory_id, 0), COALESCE(s.name, ''),
	       p.brand, p.image, p.rating, p.quantity, p.created_at
	FROM products p
	LEFT JOIN subcategories s ON s.id = p.subcategory_id`

// productOrder whitelists ORDER BY clauses per sort key.
var productOrder = map[string]string{
	repository.SortNewest:    `p.created_at DESC, p.id DESC`,
	repository.SortRating:    `p.rating DESC, p.id DESC`,
	repository.SortPriceAsc:  `p.price ASC, p.id ASC`,
	repository.SortPriceDesc: `p.price DESC, p.id DESC`,
	repository.SortName:      `lower(p.name) ASC, p.id ASC`,
}

func orderBy(sort string) string {
	if o, ok := productOrder[sort]; ok {
		return o
	}
	return productOrder[repository.SortNewest]
}

// ProductPostgres is a PostgreSQL implementation of repository.ProductRepository.
type ProductPostgres struct {
	db *sql.DB
}

// NewProductPostgres creates a new ProductPostgres repository.
func NewProductPostgres(db *sql.DB) *ProductPostgres {
	return &ProductPostgres{db: db}
}

var _ repository.ProductRepository = (*ProductPostgres)(nil)

func scanProduct(row rowScanner) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Description,
		&p.SubcategoryID,
		&p.SubcategoryName,
		&p.Brand,
		&p.Image,
		&p.Rating,
		&p.Quantity,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows *sql.Rows) ([]model.Product, error) {
	defer rows.Close()
	items := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a product row. The subcategory name is carried over from the input.
func (r *ProductPostgres) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `
		INSERT INTO products (name, price, description, subcategory_id, brand, image, rating, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	out := *p
	if err := r.db.QueryRowContext(ctx, q,
		p.Name,
		p.Price,
		p.Description,
		nullID(p.SubcategoryID),
		p.Brand,
		p.Image,
		p.Rating,
		p.Quantity,
	).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductPostgres) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	return scanProduct(r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id))
}

// List returns one page of products in the requested order and the total count.
func (r *ProductPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Product], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, productSelect+` ORDER BY `+orderBy(pq.Sort)+` LIMIT $1 OFFSET $2`, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Product]{Items: items, Total: total}, nil
}

// ListBySubcategory returns one page of a subcategory's products.
func (r *ProductPostgres) ListBySubcategory(ctx context.Context, subcategoryID int64, pq repository.PageQuery) (*repository.PageResult[model.Product], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE subcategory_id = $1`, subcategoryID).Scan(&total); err != nil {
		return nil, err
	}

	q := productSelect + ` WHERE p.subcategory_id = $1 ORDER BY ` + orderBy(pq.Sort) + ` LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, q, subcategoryID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Product]{Items: items, Total: total}, nil
}

// Search matches keyword as a case-insensitive substring. LIKE wildcards in
// the keyword are escaped.
func (r *ProductPostgres) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	q := productSelect + `
		WHERE lower(p.name) LIKE $1 ESCAPE '\'
		   OR lower(p.brand) LIKE $1 ESCAPE '\'
		   OR lower(p.description) LIKE $1 ESCAPE '\'
		ORDER BY p.name, p.id`
	rows, err := r.db.QueryContext(ctx, q, pattern)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *ProductPostgres) All(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, productSelect+` ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *ProductPostgres) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `
		UPDATE products
		SET name = $2, price = $3, description = $4, subcategory_id = $5,
		    brand = $6, image = $7, rating = $8, quantity = $9
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q,
		p.ID,
		p.Name,
		p.Price,
		p.Description,
		nullID(p.SubcategoryID),
		p.Brand,
		p.Image,
		p.Rating,
		p.Quantity,
	)
	if err != nil {
		return nil, err
	}
	if err := affected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, p.ID)
}

func (r *ProductPostgres) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
