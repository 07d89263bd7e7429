package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/http/middleware"
	"storefront/internal/model"
	"storefront/internal/service"
)

type registerRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Login     string     `json:"login"`
	Token     string     `json:"token"`
	Role      model.Role `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
}

type loginFailure struct {
	Login string `json:"login"`
	errorPayload
}

// Register godoc
// @Summary Create a customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "account"
// @Success 201 {object} model.User
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/auth/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if ok, err := bindBody(c, &req); !ok {
			return err
		}
		user, err := svc.Register(c.UserContext(), service.RegisterInput{
			Username:    req.Username,
			Email:       req.Email,
			Password:    req.Password,
			PhoneNumber: req.PhoneNumber,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {object} loginFailure
// @Router /api/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if ok, err := bindBody(c, &req); !ok {
			return err
		}
		res, err := svc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(loginFailure{
					Login: "fail",
					errorPayload: errorPayload{
						RequestID: requestID(c),
						Error:     errorEnvelope{Code: "UNAUTHORIZED", Message: "invalid username or password"},
					},
				})
			}
			return writeServiceError(c, err)
		}
		return c.JSON(loginResponse{Login: "success", Token: res.Token, Role: res.Role, ExpiresAt: res.ExpiresAt})
	}
}

// Me returns the authenticated caller's profile.
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		}
		user, err := svc.Profile(c.UserContext(), claims.Username)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(user)
	}
}
