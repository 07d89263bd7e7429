package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/model"
)

func newAuthApp(t *testing.T) (*fiber.App, *auth.Tokens) {
	t.Helper()
	tokens, err := auth.NewTokens(config.AuthConfig{JWTSecret: "test-secret", Issuer: "storefront", TokenTTL: time.Hour})
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", Authenticate(tokens), func(c *fiber.Ctx) error {
		return c.SendString(ClaimsFrom(c).Username)
	})
	app.Get("/admin", Authenticate(tokens), RequireRole(model.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app, tokens
}

func issue(t *testing.T, tokens *auth.Tokens, role model.Role) string {
	t.Helper()
	tok, _, err := tokens.Issue(&model.User{ID: 1, Username: "ana", Role: role})
	require.NoError(t, err)
	return tok
}

func TestAuthenticate(t *testing.T) {
	app, tokens := newAuthApp(t)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", header: "", want: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: fiber.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", want: fiber.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + issue(t, tokens, model.RoleUser), want: fiber.StatusOK},
		{name: "scheme is case-insensitive", header: "bearer " + issue(t, tokens, model.RoleUser), want: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRequireRole(t *testing.T) {
	app, tokens := newAuthApp(t)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+issue(t, tokens, model.RoleUser))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+issue(t, tokens, model.RoleAdmin))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
