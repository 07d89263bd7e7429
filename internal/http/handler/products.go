package handler

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/service"
	"storefront/internal/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type productForm struct {
	Name        string  `form:"name" validate:"required,max=200"`
	Price       float64 `form:"price" validate:"gte=0"`
	Description string  `form:"description" validate:"max=5000"`
	Subcategory string  `form:"subcategory" validate:"required"`
	Brand       string  `form:"brand" validate:"max=100"`
	Rating      float64 `form:"rating" validate:"gte=0,lte=5"`
	Quantity    int     `form:"quantity" validate:"gte=0"`
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "offset" default(0)
// @Param sort query string false "newest|rating|price_asc|price_desc|name"
// @Success 200 {object} service.ListResult[model.Product]
// @Router /api/products [get]
func ListProducts(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := pagination(c)
		if !ok {
			return err
		}
		res, err := svc.List(c.UserContext(), limit, offset, c.Query("sort"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// SearchProducts godoc
// @Summary Case-insensitive keyword search over name, brand and description
// @Tags products
// @Produce json
// @Param q query string true "keyword"
// @Success 200 {object} map[string][]model.Product
// @Failure 400 {object} errorPayload
// @Router /api/products/search [get]
func SearchProducts(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

func GetProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// CreateProduct godoc
// @Summary Create a product with its image
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "name"
// @Param price formData number true "price"
// @Param subcategory formData string true "subcategory name"
// @Param image formData file true "jpg, jpeg or png up to 5MB"
// @Success 201 {object} model.Product
// @Failure 400 {object} errorPayload
// @Router /api/products [post]
func CreateProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form productForm
		if ok, err := bindBody(c, &form); !ok {
			return err
		}
		return withImage(c, func(img *storage.Upload) error {
			if img == nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "image is required")
			}
			p, err := svc.Create(c.UserContext(), service.ProductInput{
				Name:        form.Name,
				Price:       form.Price,
				Description: form.Description,
				Subcategory: form.Subcategory,
				Brand:       form.Brand,
				Rating:      form.Rating,
				Quantity:    form.Quantity,
			}, img)
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(p)
		})
	}
}

// UpdateProduct applies the non-blank multipart fields; an image field replaces the stored image.
func UpdateProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		price, ok, err := formNumber[float64](c, "price")
		if !ok {
			return err
		}
		rating, ok, err := formNumber[float64](c, "rating")
		if !ok {
			return err
		}
		quantity, ok, err := formNumber[int](c, "quantity")
		if !ok {
			return err
		}
		in := service.ProductUpdate{
			Name:        optional(c.FormValue("name")),
			Price:       price,
			Description: optional(c.FormValue("description")),
			Subcategory: optional(c.FormValue("subcategory")),
			Brand:       optional(c.FormValue("brand")),
			Rating:      rating,
			Quantity:    quantity,
		}
		return withImage(c, func(img *storage.Upload) error {
			p, err := svc.Update(c.UserContext(), id, in, img)
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.JSON(p)
		})
	}
}

func DeleteProduct(svc service.ProductService) fiber.Handler {
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

// ExportProducts godoc
// @Summary Download every product as an XLSX workbook
// @Tags products
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router /api/products/export [get]
func ExportProducts(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := svc.Export(c.UserContext(), &buf); err != nil {
			return writeServiceError(c, err)
		}
		c.Attachment("products-" + time.Now().UTC().Format("20060102") + ".xlsx")
		c.Set(fiber.HeaderContentType, xlsxContentType)
		return c.Send(buf.Bytes())
	}
}
