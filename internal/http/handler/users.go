package handler

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/model"
	"storefront/internal/service"
)

type createUserRequest struct {
	Username    string     `json:"username" validate:"required,min=3,max=50"`
	Email       string     `json:"email" validate:"required,email"`
	Password    string     `json:"password" validate:"required,min=6,max=72"`
	PhoneNumber string     `json:"phone_number" validate:"omitempty,max=20"`
	Role        model.Role `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

type updateUserRequest struct {
	Username    *string     `json:"username" validate:"omitempty,min=3,max=50"`
	Email       *string     `json:"email" validate:"omitempty,email"`
	Password    *string     `json:"password" validate:"omitempty,min=6,max=72"`
	PhoneNumber *string     `json:"phone_number" validate:"omitempty,max=20"`
	Role        *model.Role `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := pagination(c)
		if !ok {
			return err
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createUserRequest
		if ok, err := bindBody(c, &req); !ok {
			return err
		}
		u, err := svc.Create(c.UserContext(), service.UserInput{
			Username:    req.Username,
			Email:       req.Email,
			Password:    req.Password,
			PhoneNumber: req.PhoneNumber,
			Role:        req.Role,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		var req updateUserRequest
		if ok, err := bindBody(c, &req); !ok {
			return err
		}
		u, err := svc.Update(c.UserContext(), id, service.UserUpdate{
			Username:    req.Username,
			Email:       req.Email,
			Password:    req.Password,
			PhoneNumber: req.PhoneNumber,
			Role:        req.Role,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
