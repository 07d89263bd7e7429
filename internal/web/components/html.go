// Package components holds the storefront and admin page components. Each is a
// templ.Component written in plain Go; data is read from the services on
// every render.
package components

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/web/lazy"
)

var esc = templ.EscapeString[string]

// html writes markup to w. The first write error sticks and later writes are dropped.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

func (h *html) text(s string) {
	h.raw(esc(s))
}

func (h *html) printf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

func (h *html) render(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func component(fn func(ctx context.Context, h *html) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		if err := fn(ctx, h); err != nil {
			return err
		}
		return h.err
	})
}

// ready is the loader for components that need nothing beyond their code.
func ready(c templ.Component) lazy.Loader {
	return func(context.Context) (templ.Component, error) {
		return c, nil
	}
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(model.RoundMoney(v), 'f', 2, 64)
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

// parseID reads a positive integer path or query value.
func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", service.ErrInvalidInput, name)
	}
	return id, nil
}

func page(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func heading(h *html, title string) {
	h.raw(`<h1>`)
	h.text(title)
	h.raw(`</h1>`)
}

func result(h *html) {
	h.raw(`<p class="result" data-result></p>`)
}

func input(h *html, label, name, kind, value string, required bool) {
	h.raw(`<label>`, esc(label), ` <input type="`, kind, `" name="`, name, `" value="`, esc(value), `"`)
	if kind == "number" {
		h.raw(` step="any" min="0"`)
	}
	if required {
		h.raw(` required`)
	}
	h.raw(`></label>`)
}

func textarea(h *html, label, name, value string) {
	h.raw(`<label>`, esc(label), ` <textarea name="`, name, `">`, esc(value), `</textarea></label>`)
}

func deleteButton(h *html, api, what string) {
	h.raw(`<button type="button" class="danger" data-api="`, esc(api), `" data-method="DELETE" data-confirm="Delete `, esc(what), `?">Delete</button>`)
}

func productCard(h *html, p model.Product) {
	h.raw(`<article class="card product">`)
	h.raw(`<a href="/productitem?id=`, idString(p.ID), `">`)
	if p.Image != "" {
		h.raw(`<img src="`, esc(p.Image), `" alt="`, esc(p.Name), `" loading="lazy">`)
	}
	h.raw(`<h3>`, esc(p.Name), `</h3></a>`)
	if p.Brand != "" {
		h.raw(`<p class="brand">`, esc(p.Brand), `</p>`)
	}
	h.raw(`<p class="price">`, money(p.Price), `</p>`)
	h.printf(`<p class="rating">%.1f / 5</p>`, p.Rating)
	h.raw(`</article>`)
}

func productGrid(h *html, items []model.Product) {
	if len(items) == 0 {
		h.raw(`<p class="empty">No products yet.</p>`)
		return
	}
	h.raw(`<div class="grid">`)
	for _, p := range items {
		productCard(h, p)
	}
	h.raw(`</div>`)
}

// pager links to the previous and next page of path when they exist.
func pager(h *html, path string, current, size, total int) {
	if total <= size {
		return
	}
	h.raw(`<div class="pager">`)
	if current > 1 {
		h.printf(`<a href="%s?page=%d">Previous</a>`, esc(path), current-1)
	}
	h.printf(` <span>Page %d</span> `, current)
	if current*size < total {
		h.printf(`<a href="%s?page=%d">Next</a>`, esc(path), current+1)
	}
	h.raw(`</div>`)
}
