package postgres

import (
	"context"
	"database/sql"

	"storefront/internal/model"
	"storefront/internal/repository"
)

const subcategorySelect = `
	SELECT s.id, s.name, s.description, s.category_id, COALESCE(c.name, '')
	FROM subcategories s
	LEFT JOIN categories c ON c.id = s.category_id`

// SubcategoryPostgres is a PostgreSQL implementation of repository.SubcategoryRepository.
type SubcategoryPostgres struct {
	db *sql.DB
}

// NewSubcategoryPostgres creates a new SubcategoryPostgres repository.
func NewSubcategoryPostgres(db *sql.DB) *SubcategoryPostgres {
	return &SubcategoryPostgres{db: db}
}

var _ repository.SubcategoryRepository = (*SubcategoryPostgres)(nil)

func scanSubcategory(row rowScanner) (*model.Subcategory, error) {
	var s model.Subcategory
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.CategoryID, &s.CategoryName); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a subcategory. The returned record does not carry the category name.
func (r *SubcategoryPostgres) Create(ctx context.Context, s *model.Subcategory) (*model.Subcategory, error) {
	const q = `
		INSERT INTO subcategories (name, description, category_id)
		VALUES ($1, $2, $3)
		RETURNING id`
	out := *s
	if err := r.db.QueryRowContext(ctx, q, s.Name, s.Description, s.CategoryID).Scan(&out.ID); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SubcategoryPostgres) FindByID(ctx context.Context, id int64) (*model.Subcategory, error) {
	return scanSubcategory(r.db.QueryRowContext(ctx, subcategorySelect+` WHERE s.id = $1`, id))
}

func (r *SubcategoryPostgres) FindByName(ctx context.Context, name string) (*model.Subcategory, error) {
	return scanSubcategory(r.db.QueryRowContext(ctx, subcategorySelect+` WHERE s.name = $1`, name))
}

func (r *SubcategoryPostgres) List(ctx context.Context) ([]model.Subcategory, error) {
	rows, err := r.db.QueryContext(ctx, subcategorySelect+` ORDER BY c.name, s.name, s.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Subcategory, 0)
	for rows.Next() {
		s, err := scanSubcategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

func (r *SubcategoryPostgres) Update(ctx context.Context, s *model.Subcategory) (*model.Subcategory, error) {
	const q = `UPDATE subcategories SET name = $2, description = $3, category_id = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, s.ID, s.Name, s.Description, s.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := affected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, s.ID)
}

func (r *SubcategoryPostgres) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(res)
}
