package handler

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/http/middleware"
	"storefront/internal/model"
	"storefront/internal/service"
)

// Services bundles what the JSON API serves.
type Services struct {
	Auth          service.AuthService
	Users         service.UserService
	Categories    service.CategoryService
	Subcategories service.SubcategoryService
	Products      service.ProductService
	Cart          service.CartService
	Invoices      service.InvoiceService
}

// RegisterRoutes attaches the health probes and the /api routes to app.
// tokens guards the authenticated routes; health lists the dependencies
// probed by /health.
func RegisterRoutes(app *fiber.App, svc Services, tokens middleware.TokenParser, health ...Pinger) {
	app.Get("/health", HealthCheck(health...))
	app.Get("/healthz", LivenessProbe())

	authn := middleware.Authenticate(tokens)
	admin := []fiber.Handler{authn, middleware.RequireRole(model.RoleAdmin)}
	withAdmin := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, admin...), h)
	}

	api := app.Group("/api")

	a := api.Group("/auth")
	a.Post("/register", Register(svc.Auth))
	a.Post("/login", Login(svc.Auth))
	a.Get("/me", authn, Me(svc.Auth))

	u := api.Group("/users", admin...)
	u.Get("/", ListUsers(svc.Users))
	u.Post("/", CreateUser(svc.Users))
	u.Get("/:id", GetUser(svc.Users))
	u.Put("/:id", UpdateUser(svc.Users))
	u.Delete("/:id", DeleteUser(svc.Users))

	cat := api.Group("/categories")
	cat.Get("/", ListCategories(svc.Categories))
	cat.Get("/:id", GetCategory(svc.Categories))
	cat.Post("/", withAdmin(CreateCategory(svc.Categories))...)
	cat.Put("/:id", withAdmin(UpdateCategory(svc.Categories))...)
	cat.Delete("/:id", withAdmin(DeleteCategory(svc.Categories))...)

	sub := api.Group("/subcategories")
	sub.Get("/", ListSubcategories(svc.Subcategories))
	sub.Get("/:id", GetSubcategory(svc.Subcategories))
	sub.Get("/:id/products", ListSubcategoryProducts(svc.Products))
	sub.Post("/", withAdmin(CreateSubcategory(svc.Subcategories))...)
	sub.Put("/:id", withAdmin(UpdateSubcategory(svc.Subcategories))...)
	sub.Delete("/:id", withAdmin(DeleteSubcategory(svc.Subcategories))...)

	// Static segments go before /:id.
	prod := api.Group("/products")
	prod.Get("/", ListProducts(svc.Products))
	prod.Get("/search", SearchProducts(svc.Products))
	prod.Get("/export", withAdmin(ExportProducts(svc.Products))...)
	prod.Get("/:id", GetProduct(svc.Products))
	prod.Post("/", withAdmin(CreateProduct(svc.Products))...)
	prod.Put("/:id", withAdmin(UpdateProduct(svc.Products))...)
	prod.Delete("/:id", withAdmin(DeleteProduct(svc.Products))...)

	cart := api.Group("/cart")
	cart.Get("/", GetCart(svc.Cart))
	cart.Delete("/", ClearCart(svc.Cart))
	cart.Post("/items", AddCartItem(svc.Cart))
	cart.Put("/items/:productId", SetCartItem(svc.Cart))
	cart.Delete("/items/:productId", RemoveCartItem(svc.Cart))
	cart.Get("/invoice", PreviewInvoice(svc.Invoices))
	cart.Post("/checkout", Checkout(svc.Invoices))

	api.Get("/invoices/:id", withAdmin(GetInvoice(svc.Invoices))...)
}
