package components

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
	"storefront/internal/service"
	svcmocks "storefront/internal/service/mocks"
	stmocks "storefront/internal/storage/mocks"
	"storefront/internal/web/cartctx"
	"storefront/internal/web/shell"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func withParam(name, value string) context.Context {
	return shell.WithParams(context.Background(), "/", map[string]string{name: value}, nil)
}

func withQuery(name, value string) context.Context {
	return shell.WithParams(context.Background(), "/", nil, map[string]string{name: value})
}

func products() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Kettle", Price: 19.5, Brand: "Acme", Rating: 4.5, Quantity: 3, SubcategoryID: 2, SubcategoryName: "Kitchen"},
		{ID: 2, Name: "<b>Toaster</b>", Price: 25, Quantity: 0},
	}
}

func TestStoreNav(t *testing.T) {
	cart := &model.Cart{Items: []model.CartItem{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 3}}}
	ctx := cartctx.WithCart(context.Background(), "sid", cart)

	out := render(t, ctx, StoreNav("Bob & Co"))
	assert.Contains(t, out, `<nav class="navbar">`)
	assert.Contains(t, out, "Bob &amp; Co")
	assert.Contains(t, out, `data-cart-count>5<`)

	out = render(t, context.Background(), StoreNav("Shop"))
	assert.Contains(t, out, `data-cart-count>0<`)
}

func TestAdminNavMarksCurrentPath(t *testing.T) {
	ctx := shell.WithParams(context.Background(), "/upload", nil, nil)
	out := render(t, ctx, AdminNav("Shop"))

	assert.Contains(t, out, `<nav class="sidebar">`)
	assert.Contains(t, out, `<a href="/upload" class="active" aria-current="page">Products</a>`)
	assert.Contains(t, out, `<a href="/productupload">Add product</a>`)
}

func TestPics(t *testing.T) {
	t.Run("presigned banners", func(t *testing.T) {
		store := new(stmocks.MockStorage)
		store.On("PresignGet", mock.Anything, "banners/a.jpg", 10*time.Minute).Return("https://cdn/a.jpg?sig=1&x=2", nil)

		out := render(t, context.Background(), Pics(StorageBanners{Store: store, Keys: []string{"banners/a.jpg"}, TTL: 10 * time.Minute}, nil))
		assert.Contains(t, out, `<img src="https://cdn/a.jpg?sig=1&amp;x=2" alt="banner 1">`)
		store.AssertExpectations(t)
	})

	t.Run("lookup failure falls back to welcome", func(t *testing.T) {
		store := new(stmocks.MockStorage)
		store.On("PresignGet", mock.Anything, "banners/a.jpg", time.Hour).Return("", errors.New("no such bucket"))

		out := render(t, context.Background(), Pics(StorageBanners{Store: store, Keys: []string{"banners/a.jpg"}}, nil))
		assert.Contains(t, out, "Welcome")
		assert.NotContains(t, out, "<img")
	})

	t.Run("no source", func(t *testing.T) {
		out := render(t, context.Background(), Pics(nil, nil))
		assert.Contains(t, out, `<section class="banner">`)
	})
}

func TestCarouselGroupsSubcategories(t *testing.T) {
	cats := new(svcmocks.MockCategoryService)
	subs := new(svcmocks.MockSubcategoryService)
	cats.On("List", mock.Anything).Return([]model.Category{{ID: 1, Name: "Home"}, {ID: 2, Name: "Garden"}}, nil)
	subs.On("List", mock.Anything).Return([]model.Subcategory{
		{ID: 10, Name: "Kitchen", CategoryID: 1},
		{ID: 11, Name: "Tools", CategoryID: 2},
	}, nil)

	out := render(t, context.Background(), Carousel(cats, subs))
	home := strings.Index(out, "Home")
	garden := strings.Index(out, "Garden")
	kitchen := strings.Index(out, `<a href="/products/10">Kitchen</a>`)
	tools := strings.Index(out, `<a href="/products/11">Tools</a>`)
	assert.True(t, home < kitchen && kitchen < garden && garden < tools, out)
}

func TestCarouselError(t *testing.T) {
	cats := new(svcmocks.MockCategoryService)
	cats.On("List", mock.Anything).Return(nil, errors.New("db down"))

	err := Carousel(cats, new(svcmocks.MockSubcategoryService)).Render(context.Background(), io.Discard)
	assert.ErrorContains(t, err, "db down")
}

func TestShelves(t *testing.T) {
	cases := []struct {
		name string
		c    func(service.ProductService) templ.Component
		sort string
	}{
		{"Top", Top, "rating"},
		{"Top2", Top2, "newest"},
		{"Top3", Top3, "price_asc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prods := new(svcmocks.MockProductService)
			prods.On("List", mock.Anything, shelfSize, 0, tc.sort).
				Return(&service.ListResult[model.Product]{Items: products(), Total: 2}, nil)

			out := render(t, context.Background(), tc.c(prods))
			assert.Contains(t, out, `<a href="/productitem?id=1">`)
			assert.Contains(t, out, "$19.50")
			assert.Contains(t, out, "&lt;b&gt;Toaster&lt;/b&gt;")
			prods.AssertExpectations(t)
		})
	}
}

func TestAdminDashboardRendersChildren(t *testing.T) {
	prods := new(svcmocks.MockProductService)
	cats := new(svcmocks.MockCategoryService)
	prods.On("List", mock.Anything, 1, 0, "newest").Return(&service.ListResult[model.Product]{Total: 42}, nil)
	cats.On("List", mock.Anything).Return([]model.Category{{ID: 1}}, nil)

	ctx := templ.WithChildren(context.Background(), templ.Raw(`<div id="child"></div>`))
	out := render(t, ctx, AdminDashboard(prods, cats))
	assert.Contains(t, out, "<strong>42</strong> products")
	assert.Contains(t, out, "<strong>1</strong> categories")
	assert.Contains(t, out, `<div id="child"></div></section>`)
}

func TestProductsPage(t *testing.T) {
	t.Run("lists the subcategory", func(t *testing.T) {
		prods := new(svcmocks.MockProductService)
		subs := new(svcmocks.MockSubcategoryService)
		subs.On("Get", mock.Anything, int64(2)).Return(&model.Subcategory{ID: 2, Name: "Kitchen"}, nil)
		prods.On("ListBySubcategory", mock.Anything, int64(2), productsPerPage, 0).
			Return(&service.ListResult[model.Product]{Items: products()[:1], Total: 30}, nil)

		ctx := shell.WithParams(context.Background(), "/products/2", map[string]string{"id": "2"}, nil)
		out := render(t, ctx, ProductsPage(prods, subs))
		assert.Contains(t, out, "<h1>Kitchen</h1>")
		assert.Contains(t, out, "Kettle")
		assert.Contains(t, out, `<a href="/products/2?page=2">Next</a>`)
	})

	t.Run("second page offset", func(t *testing.T) {
		prods := new(svcmocks.MockProductService)
		subs := new(svcmocks.MockSubcategoryService)
		subs.On("Get", mock.Anything, int64(2)).Return(&model.Subcategory{ID: 2, Name: "Kitchen"}, nil)
		prods.On("ListBySubcategory", mock.Anything, int64(2), productsPerPage, productsPerPage).
			Return(&service.ListResult[model.Product]{Total: 30}, nil)

		ctx := shell.WithParams(context.Background(), "/products/2", map[string]string{"id": "2"}, map[string]string{"page": "2"})
		out := render(t, ctx, ProductsPage(prods, subs))
		assert.Contains(t, out, "Previous")
		assert.NotContains(t, out, "Next")
	})

	t.Run("bad id", func(t *testing.T) {
		err := ProductsPage(nil, nil).Render(withParam("id", "abc"), io.Discard)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("unknown subcategory", func(t *testing.T) {
		subs := new(svcmocks.MockSubcategoryService)
		subs.On("Get", mock.Anything, int64(9)).Return(nil, fmt.Errorf("subcategory %w", service.ErrNotFound))

		err := ProductsPage(nil, subs).Render(withParam("id", "9"), io.Discard)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestProductItem(t *testing.T) {
	prods := new(svcmocks.MockProductService)
	items := products()
	prods.On("Get", mock.Anything, int64(1)).Return(&items[0], nil)
	prods.On("Get", mock.Anything, int64(2)).Return(&items[1], nil)

	out := render(t, withQuery("id", "1"), ProductItem(prods))
	assert.Contains(t, out, `data-api="/api/cart/items"`)
	assert.Contains(t, out, `name="product_id" value="1" data-number`)
	assert.Contains(t, out, `max="3"`)
	assert.Contains(t, out, `<a href="/products/2">Kitchen</a>`)

	out = render(t, withQuery("id", "2"), ProductItem(prods))
	assert.Contains(t, out, "Out of stock")
	assert.NotContains(t, out, "<form")

	err := ProductItem(prods).Render(context.Background(), io.Discard)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestAuthPages(t *testing.T) {
	out := render(t, context.Background(), Login())
	assert.Contains(t, out, `data-api="/api/auth/login"`)
	assert.Contains(t, out, `data-admin-redirect="/adminDashboard"`)

	out = render(t, context.Background(), Register("Shop"))
	assert.Contains(t, out, `data-api="/api/auth/register"`)
	assert.Contains(t, out, `name="email"`)
	assert.NotContains(t, out, "<nav")
}

func TestProductForms(t *testing.T) {
	subs := new(svcmocks.MockSubcategoryService)
	subs.On("List", mock.Anything).Return([]model.Subcategory{{ID: 2, Name: "Kitchen"}, {ID: 3, Name: "Garden"}}, nil)

	out := render(t, context.Background(), ProductUpload(subs))
	assert.Contains(t, out, `data-api="/api/products" data-method="POST" data-multipart`)
	assert.Contains(t, out, `<option value="Garden">Garden</option>`)
	assert.Contains(t, out, `name="image" accept=".jpg,.jpeg,.png" required`)

	prods := new(svcmocks.MockProductService)
	items := products()
	prods.On("Get", mock.Anything, int64(1)).Return(&items[0], nil)

	out = render(t, withParam("productId", "1"), UpdateProduct(prods, subs))
	assert.Contains(t, out, `data-api="/api/products/1" data-method="PUT"`)
	assert.Contains(t, out, `<option value="Kitchen" selected>`)
	assert.Contains(t, out, `value="Kettle"`)
	assert.NotContains(t, out, `accept=".jpg,.jpeg,.png" required`)
}

func TestUploadProductTable(t *testing.T) {
	prods := new(svcmocks.MockProductService)
	prods.On("List", mock.Anything, adminPageSize, 0, "newest").
		Return(&service.ListResult[model.Product]{Items: products(), Total: 2}, nil)

	out := render(t, context.Background(), UploadProduct(prods))
	assert.Contains(t, out, `<a href="/updateproduct/1">Edit</a>`)
	assert.Contains(t, out, `data-api="/api/products/2" data-method="DELETE"`)
}

func TestCustomerPages(t *testing.T) {
	out := render(t, context.Background(), Customers())
	assert.Contains(t, out, `<tbody id="customers">`)
	assert.Contains(t, out, "/api/users?limit=100")

	out = render(t, withParam("id", "5"), CustomerUpdate())
	assert.Contains(t, out, `data-api="/api/users/5" data-method="PUT"`)

	err := CustomerUpdate().Render(withParam("id", "0"), io.Discard)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	out = render(t, context.Background(), CustomerCreate())
	assert.Contains(t, out, `data-api="/api/users" data-method="POST"`)
	assert.Contains(t, out, `<option value="ADMIN">`)
}

func TestCategoryPages(t *testing.T) {
	cats := new(svcmocks.MockCategoryService)
	cats.On("List", mock.Anything).Return([]model.Category{{ID: 1, Name: "Home"}, {ID: 2, Name: "Garden"}}, nil)
	cats.On("Get", mock.Anything, int64(1)).Return(&model.Category{ID: 1, Name: "Home", Image: "http://img/1.png"}, nil)
	cats.On("Get", mock.Anything, int64(7)).Return(nil, service.ErrNotFound)

	out := render(t, context.Background(), AdminCategory(cats))
	assert.Contains(t, out, `<a href="/update-category/2">Edit</a>`)

	out = render(t, context.Background(), AddCategory())
	assert.Contains(t, out, `data-api="/api/categories" data-method="POST" data-multipart`)

	out = render(t, withParam("id", "1"), UpdateCategory(cats))
	assert.Contains(t, out, `data-api="/api/categories/1" data-method="PUT"`)
	assert.Contains(t, out, `src="http://img/1.png"`)

	err := UpdateCategory(cats).Render(withParam("id", "7"), io.Discard)
	assert.ErrorIs(t, err, service.ErrNotFound)

	subs := new(svcmocks.MockSubcategoryService)
	subs.On("List", mock.Anything).Return([]model.Subcategory{{ID: 4, Name: "Tools", CategoryID: 2, CategoryName: "Garden"}}, nil)
	subs.On("Get", mock.Anything, int64(4)).Return(&model.Subcategory{ID: 4, Name: "Tools", CategoryID: 2}, nil)

	out = render(t, context.Background(), AdminSubCategory(subs))
	assert.Contains(t, out, `<a href="/edit-subcategory/4">Edit</a>`)
	assert.Contains(t, out, "<td>Garden</td>")

	out = render(t, context.Background(), AddSubCategory(cats))
	assert.Contains(t, out, `data-api="/api/subcategories" data-method="POST"`)
	assert.Contains(t, out, `name="category_id" data-number required`)

	out = render(t, withParam("id", "4"), EditSubCategory(subs, cats))
	assert.Contains(t, out, `data-api="/api/subcategories/4" data-method="PUT"`)
	assert.Contains(t, out, `<option value="2" selected>Garden</option>`)
}

func TestCartInvoice(t *testing.T) {
	invoices := new(svcmocks.MockInvoiceService)
	cart := &model.Cart{SessionID: "sid", Items: []model.CartItem{{ProductID: 1, Name: "Kettle", Price: 10, Quantity: 2}}}
	invoices.On("Preview", cart).Return(&model.Invoice{
		Lines:      []model.InvoiceLine{{ProductID: 1, Name: "Kettle", UnitPrice: 10, Quantity: 2, Total: 20}},
		Subtotal:   20,
		TaxPercent: 12.5,
		Tax:        2.5,
		Total:      22.5,
	})

	out := render(t, cartctx.WithCart(context.Background(), "sid", cart), CartInvoice(invoices))
	assert.Contains(t, out, "Tax (12.5%)")
	assert.Contains(t, out, `<td class="total">$22.50</td>`)
	assert.Contains(t, out, `data-api="/api/cart/checkout"`)

	empty := &model.Cart{SessionID: "other"}
	invoices.On("Preview", empty).Return(&model.Invoice{})
	out = render(t, cartctx.WithCart(context.Background(), "other", empty), CartInvoice(invoices))
	assert.Contains(t, out, "The cart is empty.")
}

func TestCatalogServesPages(t *testing.T) {
	prods := new(svcmocks.MockProductService)
	cats := new(svcmocks.MockCategoryService)
	subs := new(svcmocks.MockSubcategoryService)
	prods.On("List", mock.Anything, mock.Anything, 0, mock.Anything).
		Return(&service.ListResult[model.Product]{Items: products(), Total: 2}, nil)
	cats.On("List", mock.Anything).Return([]model.Category{{ID: 1, Name: "Home"}}, nil)
	subs.On("List", mock.Anything).Return([]model.Subcategory{{ID: 2, Name: "Kitchen", CategoryID: 1}}, nil)

	cat := NewCatalog(Deps{SiteName: "Test Shop", Products: prods, Categories: cats, Subcategories: subs}, nil)
	app := fiber.New()
	shell.Mount(app, cat, shell.Options{SiteName: "Test Shop"})

	for _, target := range []string{"/", "/adminDashboard", "/login", "/register", "/customer"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode, target)
		if target == "/register" {
			assert.NotContains(t, string(body), "<nav", target)
		} else {
			assert.Contains(t, string(body), "<nav", target)
		}
	}
	assert.True(t, cat.Top.Loaded())
	assert.False(t, cat.CartInvoice.Loaded())
}
