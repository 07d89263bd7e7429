package components

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"storefront/internal/web/cartctx"
	"storefront/internal/web/shell"
)

type link struct {
	label string
	href  string
}

var adminLinks = []link{
	{"Dashboard", "/adminDashboard"},
	{"Products", "/upload"},
	{"Add product", "/productupload"},
	{"Categories", "/admin-categories"},
	{"Add category", "/add-category"},
	{"Subcategories", "/adminsubcategory"},
	{"Add subcategory", "/add-subcategory"},
	{"Customers", "/customer"},
	{"Add customer", "/customercreate"},
	{"Invoice", "/cartinvoice"},
}

// StoreNav is the storefront navbar. It shows the session cart's item count.
func StoreNav(site string) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		count := cartctx.FromContext(ctx).Count()
		h.raw(`<nav class="navbar">`)
		h.raw(`<a class="brand" href="/">`, esc(site), `</a>`)
		h.raw(`<a href="/">Home</a>`)
		h.raw(`<a href="/login">Log in</a>`)
		h.raw(`<a href="/register">Register</a>`)
		h.raw(`<a href="/cartinvoice" class="cart">Cart <span class="badge" data-cart-count>`, strconv.Itoa(count), `</span></a>`)
		h.raw(`</nav>`)
		return nil
	})
}

// AdminNav is the admin sidebar. The link for the current path is marked active.
func AdminNav(site string) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		current := shell.Path(ctx)
		h.raw(`<nav class="sidebar"><a class="brand" href="/adminDashboard">`, esc(site), ` admin</a>`)
		for _, l := range adminLinks {
			h.raw(`<a href="`, l.href, `"`)
			if current == l.href || strings.HasPrefix(current, l.href+"/") {
				h.raw(` class="active" aria-current="page"`)
			}
			h.raw(`>`, esc(l.label), `</a>`)
		}
		h.raw(`<a href="/" data-logout>Storefront</a></nav>`)
		return nil
	})
}
