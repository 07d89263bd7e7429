package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func TestBuildPostgresDSN(t *testing.T) {
	base := config.DatabaseConfig{Host: "db", Port: "5432", User: "shop", Name: "storefront"}

	with := func(mut func(*config.DatabaseConfig)) config.DatabaseConfig {
		c := base
		mut(&c)
		return c
	}

	ok := map[string]struct {
		cfg  config.DatabaseConfig
		want string
	}{
		"password and sslmode": {
			with(func(c *config.DatabaseConfig) { c.Password, c.SSLMode = "secret", "disable" }),
			"postgres://shop:secret@db:5432/storefront?sslmode=disable",
		},
		"no password":      {with(func(c *config.DatabaseConfig) { c.SSLMode = "require" }), "postgres://shop@db:5432/storefront?sslmode=require"},
		"no query":         {base, "postgres://shop@db:5432/storefront"},
		"password escaped": {with(func(c *config.DatabaseConfig) { c.Password = "p@ss/w" }), "postgres://shop:p%40ss%2Fw@db:5432/storefront"},
		"ipv6 host":        {with(func(c *config.DatabaseConfig) { c.Host = "::1" }), "postgres://shop@[::1]:5432/storefront"},
	}
	for name, tc := range ok {
		t.Run(name, func(t *testing.T) {
			got, err := BuildPostgresDSN(tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("reports every missing field", func(t *testing.T) {
		_, err := BuildPostgresDSN(config.DatabaseConfig{Port: "5432", User: "shop"})
		require.Error(t, err)
		assert.Equal(t, "invalid database config: missing DB_HOST, DB_NAME", err.Error())
	})
}

// stubOpen makes NewPostgres use db (or fail with openErr) for the test's duration.
func stubOpen(t *testing.T, db *sql.DB, openErr error) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return db, openErr }
	t.Cleanup(func() { sqlOpen = orig })
}

func TestNewPostgres(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host: "db", Port: "5432", User: "shop", Password: "secret", Name: "storefront",
		MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetimeSec: 300,
	}
	ctx := context.Background()

	t.Run("pings and applies pool limits", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		stubOpen(t, db, nil)
		mock.ExpectPing()

		got, err := NewPostgres(ctx, cfg, nil)
		require.NoError(t, err)
		assert.Same(t, db, got)
		assert.Equal(t, 10, got.Stats().MaxOpenConnections)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("open failure", func(t *testing.T) {
		stubOpen(t, nil, errors.New("no driver"))

		got, err := NewPostgres(ctx, cfg, nil)
		assert.ErrorContains(t, err, "sql open: no driver")
		assert.Nil(t, got)
	})

	t.Run("ping failure closes the pool", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		mock.ExpectClose()

		got, err := NewPostgres(ctx, cfg, nil)
		assert.ErrorContains(t, err, "db ping: connection refused")
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bad config never opens", func(t *testing.T) {
		stubOpen(t, nil, errors.New("must not be called"))

		_, err := NewPostgres(ctx, config.DatabaseConfig{}, nil)
		assert.ErrorContains(t, err, "invalid database config")
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	newMock := func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return db, mock
	}

	t.Run("commits", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := WithTx(ctx, db, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "UPDATE products SET quantity = quantity - 1")
			return err
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and returns fn error", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("insufficient stock")
		assert.ErrorIs(t, WithTx(ctx, db, func(*sql.Tx) error { return boom }), boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports failed rollback", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(errors.New("conn lost"))

		boom := errors.New("boom")
		err := WithTx(ctx, db, func(*sql.Tx) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "rollback failed: conn lost")
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin().WillReturnError(errors.New("no conn"))

		assert.ErrorContains(t, WithTx(ctx, db, func(*sql.Tx) error { return nil }), "begin tx: no conn")
	})
}
