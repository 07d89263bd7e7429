package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"storefront/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the last table step; its presence means the
// schema is in place.
const sentinelTable = "public.invoice_lines"

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id           BIGSERIAL   PRIMARY KEY,
  username     TEXT        NOT NULL UNIQUE,
  email        TEXT        NOT NULL UNIQUE,
  password     TEXT        NOT NULL,
  phone_number TEXT        NOT NULL DEFAULT '',
  role         TEXT        NOT NULL CHECK (role IN ('ADMIN', 'USER')),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_categories",
		SQL: `CREATE TABLE IF NOT EXISTS categories (
  id          BIGSERIAL PRIMARY KEY,
  name        TEXT      NOT NULL UNIQUE,
  description TEXT      NOT NULL DEFAULT '',
  image       TEXT      NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_subcategories",
		SQL: `CREATE TABLE IF NOT EXISTS subcategories (
  id          BIGSERIAL PRIMARY KEY,
  name        TEXT      NOT NULL UNIQUE,
  description TEXT      NOT NULL DEFAULT '',
  category_id BIGINT    NOT NULL REFERENCES categories (id) ON DELETE CASCADE
);`,
	},
	{
		Name: "create_table_products",
		SQL: `CREATE TABLE IF NOT EXISTS products (
  id             BIGSERIAL     PRIMARY KEY,
  name           TEXT          NOT NULL,
  price          NUMERIC(12,2) NOT NULL CHECK (price >= 0),
  description    TEXT          NOT NULL DEFAULT '',
  subcategory_id BIGINT        REFERENCES subcategories (id) ON DELETE SET NULL,
  brand          TEXT          NOT NULL DEFAULT '',
  image          TEXT          NOT NULL DEFAULT '',
  rating         NUMERIC(3,1)  NOT NULL DEFAULT 0,
  quantity       INTEGER       NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  created_at     TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_invoices",
		SQL: `CREATE TABLE IF NOT EXISTS invoices (
  id          BIGSERIAL     PRIMARY KEY,
  number      TEXT          NOT NULL UNIQUE,
  session_id  TEXT          NOT NULL,
  subtotal    NUMERIC(12,2) NOT NULL,
  tax_percent NUMERIC(5,2)  NOT NULL,
  tax         NUMERIC(12,2) NOT NULL,
  total       NUMERIC(12,2) NOT NULL,
  created_at  TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_invoice_lines",
		SQL: `CREATE TABLE IF NOT EXISTS invoice_lines (
  invoice_id BIGINT        NOT NULL REFERENCES invoices (id) ON DELETE CASCADE,
  product_id BIGINT        NOT NULL,
  name       TEXT          NOT NULL,
  unit_price NUMERIC(12,2) NOT NULL,
  quantity   INTEGER       NOT NULL CHECK (quantity > 0),
  total      NUMERIC(12,2) NOT NULL,
  PRIMARY KEY (invoice_id, product_id)
);`,
	},
	{
		Name: "create_index_products_subcategory_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_products_subcategory_id ON products (subcategory_id);`,
	},
	{
		Name: "create_index_products_name_lower",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_products_name_lower ON products (lower(name));`,
	},
	{
		Name: "create_index_products_brand_lower",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_products_brand_lower ON products (lower(brand));`,
	},
	{
		Name: "create_index_subcategories_category_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_subcategories_category_id ON subcategories (category_id);`,
	},
}

// EnsureMigrated checks for the sentinel table and runs every step when it is missing.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger log.FieldLogger, dbHost string) error {
	start := time.Now()
	logger = logging.OrDiscard(logger).WithFields(log.Fields{
		"component": "database",
		"db_host":   dbHost,
	})

	logger.WithFields(log.Fields{"event": "db_migration_check", "status": "starting"}).Info("checking schema")

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('%s') IS NOT NULL", sentinelTable)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		logger.WithFields(log.Fields{
			"event":       "db_migration_failed",
			"status":      "error",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logger.WithFields(log.Fields{
			"event":       "db_migration_skip",
			"status":      "success",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	logger.WithFields(log.Fields{"event": "db_migration_start", "status": "in_progress"}).Info("migrating schema")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.WithFields(log.Fields{
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logger.WithFields(log.Fields{
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	logger.WithFields(log.Fields{
		"event":       "db_migration_success",
		"status":      "success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema migrated")

	return nil
}
