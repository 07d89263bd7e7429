package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// InvoicePostgres is a PostgreSQL implementation of repository.InvoiceRepository.
type InvoicePostgres struct {
	db *sql.DB
}

// NewInvoicePostgres creates a new InvoicePostgres repository.
func NewInvoicePostgres(db *sql.DB) *InvoicePostgres {
	return &InvoicePostgres{db: db}
}

var _ repository.InvoiceRepository = (*InvoicePostgres)(nil)

// Create writes the invoice header, its lines and the stock decrements in one
// transaction. A conditional UPDATE guards each decrement so concurrent
// checkouts cannot oversell.
func (r *InvoicePostgres) Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	out := *inv
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		const qInvoice = `
			INSERT INTO invoices (number, session_id, subtotal, tax_percent, tax, total, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`
		if err := tx.QueryRowContext(ctx, qInvoice,
			inv.Number,
			inv.SessionID,
			inv.Subtotal,
			inv.TaxPercent,
			inv.Tax,
			inv.Total,
			inv.CreatedAt,
		).Scan(&out.ID); err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}

		const qStock = `UPDATE products SET quantity = quantity - $2 WHERE id = $1 AND quantity >= $2`
		const qLine = `
			INSERT INTO invoice_lines (invoice_id, product_id, name, unit_price, quantity, total)
			VALUES ($1, $2, $3, $4, $5, $6)`
		for _, l := range inv.Lines {
			res, err := tx.ExecContext(ctx, qStock, l.ProductID, l.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock for product %d: %w", l.ProductID, err)
			}
			if n, err := res.RowsAffected(); err != nil {
				return err
			} else if n == 0 {
				return fmt.Errorf("product %d: %w", l.ProductID, repository.ErrInsufficientStock)
			}
			if _, err := tx.ExecContext(ctx, qLine, out.ID, l.ProductID, l.Name, l.UnitPrice, l.Quantity, l.Total); err != nil {
				return fmt.Errorf("insert invoice line: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID loads an invoice with its lines.
func (r *InvoicePostgres) FindByID(ctx context.Context, id int64) (*model.Invoice, error) {
	const qInvoice = `
		SELECT id, number, session_id, subtotal, tax_percent, tax, total, created_at
		FROM invoices WHERE id = $1`
	var inv model.Invoice
	if err := r.db.QueryRowContext(ctx, qInvoice, id).Scan(
		&inv.ID,
		&inv.Number,
		&inv.SessionID,
		&inv.Subtotal,
		&inv.TaxPercent,
		&inv.Tax,
		&inv.Total,
		&inv.CreatedAt,
	); err != nil {
		return nil, err
	}

	const qLines = `
		SELECT product_id, name, unit_price, quantity, total
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY product_id`
	rows, err := r.db.QueryContext(ctx, qLines, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inv.Lines = make([]model.InvoiceLine, 0)
	for rows.Next() {
		var l model.InvoiceLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.UnitPrice, &l.Quantity, &l.Total); err != nil {
			return nil, err
		}
		inv.Lines = append(inv.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &inv, nil
}
