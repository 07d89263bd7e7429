package handler

import (
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/service"
	"storefront/internal/storage"
)

type categoryForm struct {
	Name        string `form:"name" validate:"required,max=100"`
	Description string `form:"description" validate:"max=1000"`
}

type subcategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	CategoryID  int64  `json:"category_id" validate:"required,gt=0"`
}

type subcategoryUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	CategoryID  *int64  `json:"category_id" validate:"omitempty,gt=0"`
}

// optional returns nil for blank form values.
func optional(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

// withImage opens the optional "image" upload and closes it after fn.
func withImage(c *fiber.Ctx, fn func(img *storage.Upload) error) error {
	img, closer, err := formImage(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	if closer != nil {
		defer func(cl io.Closer) { _ = cl.Close() }(closer)
	}
	return fn(img)
}

func ListCategories(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

func GetCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		cat, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cat)
	}
}

// CreateCategory accepts multipart fields name, description and the file field image.
func CreateCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form categoryForm
		if ok, err := bindBody(c, &form); !ok {
			return err
		}
		return withImage(c, func(img *storage.Upload) error {
			if img == nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "image is required")
			}
			cat, err := svc.Create(c.UserContext(), service.CategoryInput{Name: form.Name, Description: form.Description}, img)
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(cat)
		})
	}
}

// UpdateCategory changes the non-blank fields and replaces the image when one is sent.
func UpdateCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		in := service.CategoryUpdate{
			Name:        optional(c.FormValue("name")),
			Description: optional(c.FormValue("description")),
		}
		return withImage(c, func(img *storage.Upload) error {
			cat, err := svc.Update(c.UserContext(), id, in, img)
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.JSON(cat)
		})
	}
}

func DeleteCategory(svc service.CategoryService) fiber.Handler {
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

func ListSubcategories(svc service.SubcategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

func GetSubcategory(svc service.SubcategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		sc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sc)
	}
}

// ListSubcategoryProducts pages through the products of one subcategory.
func ListSubcategoryProducts(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		limit, offset, ok, err := pagination(c)
		if !ok {
			return err
		}
		res, err := svc.ListBySubcategory(c.UserContext(), id, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func CreateSubcategory(svc service.SubcategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req subcategoryRequest
		if ok, err := bindBody(c, &req); !ok {
			return err
		}
		sc, err := svc.Create(c.UserContext(), service.SubcategoryInput{
			Name:        req.Name,
			Description: req.Description,
			CategoryID:  req.CategoryID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sc)
	}
}

func UpdateSubcategory(svc service.SubcategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		var req subcategoryUpdateRequest
		if ok, err := bindBody(c, &req); !ok {
			return err
		}
		sc, err := svc.Update(c.UserContext(), id, service.SubcategoryUpdate{
			Name:        req.Name,
			Description: req.Description,
			CategoryID:  req.CategoryID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sc)
	}
}

func DeleteSubcategory(svc service.SubcategoryService) fiber.Handler {
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

// formNumber parses an optional numeric form field. ok is false when a 400 has been written.
func formNumber[T int | float64](c *fiber.Ctx, key string) (*T, bool, error) {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return nil, true, nil
	}
	var v T
	switch p := any(&v).(type) {
	case *int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false, writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "field "+key+" must be a number")
		}
		*p = n
	case *float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false, writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "field "+key+" must be a number")
		}
		*p = f
	}
	return &v, true, nil
}
