package components

import (
	"context"
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"storefront/internal/service"
	"storefront/internal/web/shell"
)

const productsPerPage = 24

// ProductsPage lists the products of the subcategory named by the :id segment.
func ProductsPage(products service.ProductService, subcategories service.SubcategoryService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		id, err := parseID("subcategory id", shell.Param(ctx, "id"))
		if err != nil {
			return err
		}
		sub, err := subcategories.Get(ctx, id)
		if err != nil {
			return err
		}
		current := page(shell.Query(ctx, "page"))
		res, err := products.ListBySubcategory(ctx, id, productsPerPage, (current-1)*productsPerPage)
		if err != nil {
			return err
		}

		h.raw(`<section class="products">`)
		heading(h, sub.Name)
		if sub.Description != "" {
			h.raw(`<p class="lead">`, esc(sub.Description), `</p>`)
		}
		productGrid(h, res.Items)
		pager(h, shell.Path(ctx), current, productsPerPage, res.Total)
		h.raw(`</section>`)
		return nil
	})
}

// ProductItem shows one product, chosen by the ?id= query, with an add-to-cart form.
func ProductItem(products service.ProductService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		id, err := parseID("product id", shell.Query(ctx, "id"))
		if err != nil {
			return err
		}
		p, err := products.Get(ctx, id)
		if err != nil {
			return err
		}

		h.raw(`<article class="product-detail">`)
		if p.Image != "" {
			h.raw(`<img src="`, esc(p.Image), `" alt="`, esc(p.Name), `">`)
		}
		h.raw(`<div>`)
		heading(h, p.Name)
		if p.Brand != "" {
			h.raw(`<p class="brand">`, esc(p.Brand), `</p>`)
		}
		if p.SubcategoryName != "" {
			h.raw(`<p class="subcategory"><a href="/products/`, idString(p.SubcategoryID), `">`, esc(p.SubcategoryName), `</a></p>`)
		}
		h.raw(`<p class="price">`, money(p.Price), `</p>`)
		h.printf(`<p class="rating">%.1f / 5</p>`, p.Rating)
		h.raw(`<p class="description">`, esc(p.Description), `</p>`)

		if p.Quantity == 0 {
			h.raw(`<p class="stock out">Out of stock</p>`)
		} else {
			h.printf(`<p class="stock">%d in stock</p>`, p.Quantity)
			h.raw(`<form class="stack" data-api="/api/cart/items" data-redirect="`, esc(fmt.Sprintf("/productitem?id=%d", p.ID)), `">`)
			h.raw(`<input type="hidden" name="product_id" value="`, idString(p.ID), `" data-number>`)
			h.raw(`<label>Quantity <input type="number" name="quantity" value="1" min="1" max="`, strconv.Itoa(p.Quantity), `" required></label>`)
			h.raw(`<button type="submit">Add to cart</button>`)
			result(h)
			h.raw(`</form>`)
		}
		h.raw(`</div></article>`)
		return nil
	})
}

// Login posts credentials to the auth API; admins land on the dashboard.
func Login() templ.Component {
	return component(func(_ context.Context, h *html) error {
		h.raw(`<section class="auth">`)
		heading(h, "Log in")
		h.raw(`<form class="stack" data-api="/api/auth/login" data-redirect="/" data-admin-redirect="/adminDashboard">`)
		input(h, "Username", "username", "text", "", true)
		input(h, "Password", "password", "password", "", true)
		h.raw(`<button type="submit">Log in</button>`)
		result(h)
		h.raw(`</form><p>No account? <a href="/register">Register</a></p></section>`)
		return nil
	})
}

// Register is the sign-up page. It renders without a navbar, so it carries its own way back.
func Register(site string) templ.Component {
	return component(func(_ context.Context, h *html) error {
		h.raw(`<section class="auth">`)
		h.raw(`<a class="brand" href="/">`, esc(site), `</a>`)
		heading(h, "Create an account")
		h.raw(`<form class="stack" data-api="/api/auth/register" data-redirect="/login">`)
		input(h, "Username", "username", "text", "", true)
		input(h, "Email", "email", "email", "", true)
		input(h, "Phone number", "phone_number", "tel", "", false)
		input(h, "Password", "password", "password", "", true)
		h.raw(`<button type="submit">Register</button>`)
		result(h)
		h.raw(`</form><p>Already registered? <a href="/login">Log in</a></p></section>`)
		return nil
	})
}
