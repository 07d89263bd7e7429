package handler

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/web/cartctx"
)

type addItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,min=1,max=999"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=999"`
}

type cartResponse struct {
	*model.Cart
	Count    int     `json:"count"`
	Subtotal float64 `json:"subtotal"`
}

func cartJSON(c *fiber.Ctx, cart *model.Cart) error {
	return c.JSON(cartResponse{Cart: cart, Count: cart.Count(), Subtotal: cart.Subtotal()})
}

// sessionOf returns the cart session established by cartctx.Provider.
func sessionOf(c *fiber.Ctx) string {
	return cartctx.SessionID(c.UserContext())
}

func GetCart(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart, err := svc.Get(c.UserContext(), sessionOf(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return cartJSON(c, cart)
	}
}

func AddCartItem(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req addItemRequest
		if ok, err := bindBody(c, &req); !ok {
			return err
		}
		cart, err := svc.Add(c.UserContext(), sessionOf(c), req.ProductID, req.Quantity)
		if err != nil {
			return writeServiceError(c, err)
		}
		return cartJSON(c, cart)
	}
}

func SetCartItem(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, ok, err := paramID(c, "productId")
		if !ok {
			return err
		}
		var req setQuantityRequest
		if ok, err := bindBody(c, &req); !ok {
			return err
		}
		cart, err := svc.SetQuantity(c.UserContext(), sessionOf(c), productID, *req.Quantity)
		if err != nil {
			return writeServiceError(c, err)
		}
		return cartJSON(c, cart)
	}
}

func RemoveCartItem(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, ok, err := paramID(c, "productId")
		if !ok {
			return err
		}
		cart, err := svc.Remove(c.UserContext(), sessionOf(c), productID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return cartJSON(c, cart)
	}
}

func ClearCart(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Clear(c.UserContext(), sessionOf(c)); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// PreviewInvoice prices the request's cart as loaded by the cart provider.
func PreviewInvoice(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Preview(cartctx.FromContext(c.UserContext())))
	}
}

func Checkout(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inv, err := svc.Checkout(c.UserContext(), sessionOf(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(inv)
	}
}

func GetInvoice(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		inv, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(inv)
	}
}
