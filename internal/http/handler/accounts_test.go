package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
	"storefront/internal/service"
	serviceMocks "storefront/internal/service/mocks"
)

func TestRegister(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Post("/register", Register(mockSvc))

	t.Run("success", func(t *testing.T) {
		in := service.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret1"}
		mockSvc.On("Register", mock.Anything, in).
			Return(&model.User{ID: 7, Username: "alice", Email: "alice@example.com", Password: "$2a$hash", Role: model.RoleUser}, nil).Once()

		resp, err := app.Test(newJSONRequest(t, http.MethodPost, "/register", map[string]string{
			"username": "alice", "email": "alice@example.com", "password": "secret1",
		}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, float64(7), body["id"])
		assert.NotContains(t, body, "password")
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation failure", func(t *testing.T) {
		resp, err := app.Test(newJSONRequest(t, http.MethodPost, "/register", map[string]string{
			"username": "al", "email": "not-an-email", "password": "secret1",
		}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		assert.Contains(t, body.Error.Message, "field username must be at least 3")
		assert.Contains(t, body.Error.Message, "field email must be a valid email address")
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("username %w", service.ErrConflict)).Once()

		resp, err := app.Test(newJSONRequest(t, http.MethodPost, "/register", map[string]string{
			"username": "alice", "email": "alice@example.com", "password": "secret1",
		}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "CONFLICT", body.Error.Code)
		assert.Equal(t, "username already exists", body.Error.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := newJSONRequest(t, http.MethodPost, "/register", nil)
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Post("/login", Login(mockSvc))

	t.Run("success", func(t *testing.T) {
		exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		mockSvc.On("Login", mock.Anything, "root", "secret1").
			Return(&service.LoginResult{Token: "tok", Role: model.RoleAdmin, ExpiresAt: exp}, nil).Once()

		resp, err := app.Test(newJSONRequest(t, http.MethodPost, "/login", map[string]string{"username": "root", "password": "secret1"}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body loginResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "success", body.Login)
		assert.Equal(t, "tok", body.Token)
		assert.Equal(t, model.RoleAdmin, body.Role)
	})

	t.Run("bad credentials", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "root", "wrong").Return(nil, service.ErrUnauthorized).Once()

		resp, err := app.Test(newJSONRequest(t, http.MethodPost, "/login", map[string]string{"username": "root", "password": "wrong"}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var body loginFailure
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "fail", body.Login)
		assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "root", "x").Return(nil, errors.New("db down")).Once()

		resp, err := app.Test(newJSONRequest(t, http.MethodPost, "/login", map[string]string{"username": "root", "password": "x"}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "internal server error", body.Error.Message)
	})

	mockSvc.AssertExpectations(t)
}

func TestMe(t *testing.T) {
	app, svc := newRoutedApp()
	authSvc := svc.Auth.(*serviceMocks.MockAuthService)
	authSvc.On("Profile", mock.Anything, "alice").Return(&model.User{ID: 2, Username: "alice", Role: model.RoleUser}, nil).Once()

	req := newJSONRequest(t, http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var user model.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, "alice", user.Username)
	authSvc.AssertExpectations(t)
}

func TestUsers(t *testing.T) {
	app, svc := newRoutedApp()
	users := svc.Users.(*serviceMocks.MockUserService)
	admin := func(method, target string, body any) *http.Request {
		req := newJSONRequest(t, method, target, body)
		req.Header.Set("Authorization", "Bearer admin-token")
		return req
	}

	t.Run("list", func(t *testing.T) {
		users.On("List", mock.Anything, 20, 40).
			Return(&service.ListResult[model.User]{Items: []model.User{{ID: 1}}, Total: 41}, nil).Once()

		resp, err := app.Test(admin(http.MethodGet, "/api/users?limit=20&offset=40", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var res service.ListResult[model.User]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Len(t, res.Items, 1)
		assert.Equal(t, 41, res.Total)
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp, err := app.Test(admin(http.MethodGet, "/api/users?limit=abc", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp).Error.Code)
	})

	t.Run("get missing", func(t *testing.T) {
		users.On("Get", mock.Anything, int64(9)).Return(nil, fmt.Errorf("user %w", service.ErrNotFound)).Once()

		resp, err := app.Test(admin(http.MethodGet, "/api/users/9", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "user not found", decodeError(t, resp).Error.Message)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, err := app.Test(admin(http.MethodGet, "/api/users/abc", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("create admin", func(t *testing.T) {
		in := service.UserInput{Username: "bob", Email: "bob@example.com", Password: "secret1", Role: model.RoleAdmin}
		users.On("Create", mock.Anything, in).Return(&model.User{ID: 3, Username: "bob", Role: model.RoleAdmin}, nil).Once()

		resp, err := app.Test(admin(http.MethodPost, "/api/users", map[string]string{
			"username": "bob", "email": "bob@example.com", "password": "secret1", "role": "ADMIN",
		}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("create with unknown role", func(t *testing.T) {
		resp, err := app.Test(admin(http.MethodPost, "/api/users", map[string]string{
			"username": "bob", "email": "bob@example.com", "password": "secret1", "role": "ROOT",
		}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, resp).Error.Message, "field role must be one of [ADMIN USER]")
	})

	t.Run("update only sent fields", func(t *testing.T) {
		users.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(u service.UserUpdate) bool {
			return u.Email != nil && *u.Email == "new@example.com" && u.Username == nil && u.Password == nil
		})).Return(&model.User{ID: 3, Email: "new@example.com"}, nil).Once()

		resp, err := app.Test(admin(http.MethodPut, "/api/users/3", map[string]string{"email": "new@example.com"}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		users.On("Delete", mock.Anything, int64(3)).Return(nil).Once()

		resp, err := app.Test(admin(http.MethodDelete, "/api/users/3", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	users.AssertExpectations(t)
}
