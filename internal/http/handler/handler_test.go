package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
	"storefront/internal/model"
	serviceMocks "storefront/internal/service/mocks"
)

// fakeTokens accepts the tokens "admin-token" and "user-token".
type fakeTokens struct{}

func (fakeTokens) Parse(raw string) (*auth.Claims, error) {
	switch raw {
	case "admin-token":
		return &auth.Claims{UserID: 1, Username: "root", Role: model.RoleAdmin}, nil
	case "user-token":
		return &auth.Claims{UserID: 2, Username: "alice", Role: model.RoleUser}, nil
	case "expired-token":
		return nil, auth.ErrExpiredToken
	}
	return nil, auth.ErrInvalidToken
}

func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// newMultipartRequest builds a multipart request; an empty filename sends no file part.
func newMultipartRequest(t *testing.T, method, target string, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	redisUp := true
	redis := PingFunc(func(context.Context) error {
		if redisUp {
			return nil
		}
		return errors.New("connection refused")
	})

	app := fiber.New()
	app.Get("/health", HealthCheck(db, nil, redis))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("database down", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})

	t.Run("redis down", func(t *testing.T) {
		redisUp = false
		defer func() { redisUp = true }()
		dbMock.ExpectPing()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func newRoutedApp() (*fiber.App, Services) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})
	svc := Services{
		Auth:          new(serviceMocks.MockAuthService),
		Users:         new(serviceMocks.MockUserService),
		Categories:    new(serviceMocks.MockCategoryService),
		Subcategories: new(serviceMocks.MockSubcategoryService),
		Products:      new(serviceMocks.MockProductService),
		Cart:          new(serviceMocks.MockCartService),
		Invoices:      new(serviceMocks.MockInvoiceService),
	}
	RegisterRoutes(app, svc, fakeTokens{})
	return app, svc
}

func TestRouting(t *testing.T) {
	app, _ := newRoutedApp()

	t.Run("not found route", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})
}

func TestAdminRoutesAreGuarded(t *testing.T) {
	app, _ := newRoutedApp()

	cases := []struct {
		name   string
		method string
		target string
		token  string
		status int
		code   string
	}{
		{"users without token", http.MethodGet, "/api/users", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"users as customer", http.MethodGet, "/api/users", "user-token", http.StatusForbidden, "FORBIDDEN"},
		{"export with bad token", http.MethodGet, "/api/products/export", "garbage", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"expired token", http.MethodDelete, "/api/products/1", "expired-token", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"create category as customer", http.MethodPost, "/api/categories", "user-token", http.StatusForbidden, "FORBIDDEN"},
		{"invoice without token", http.MethodGet, "/api/invoices/1", "", http.StatusUnauthorized, "UNAUTHORIZED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Error.Code)
		})
	}
}
