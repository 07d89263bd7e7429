package components

import (
	"context"
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/web/shell"
)

const adminPageSize = 50

// UploadProduct is the admin product table.
func UploadProduct(products service.ProductService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		current := page(shell.Query(ctx, "page"))
		res, err := products.List(ctx, adminPageSize, (current-1)*adminPageSize, repository.SortNewest)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}

		heading(h, "Products")
		h.raw(`<p><a class="button" href="/productupload">Add product</a></p>`)
		h.raw(`<table><thead><tr><th>ID</th><th>Name</th><th>Subcategory</th><th>Brand</th><th>Price</th><th>Stock</th><th></th></tr></thead><tbody>`)
		for _, p := range res.Items {
			id := idString(p.ID)
			h.raw(`<tr><td>`, id, `</td><td>`, esc(p.Name), `</td><td>`, esc(p.SubcategoryName), `</td><td>`, esc(p.Brand), `</td>`)
			h.raw(`<td>`, money(p.Price), `</td><td>`, strconv.Itoa(p.Quantity), `</td><td>`)
			h.raw(`<a href="/updateproduct/`, id, `">Edit</a> `)
			deleteButton(h, "/api/products/"+id, p.Name)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
		result(h)
		pager(h, shell.Path(ctx), current, adminPageSize, res.Total)
		return nil
	})
}

func subcategorySelect(h *html, subs []model.Subcategory, selected string, required bool) {
	h.raw(`<label>Subcategory <select name="subcategory"`)
	if required {
		h.raw(` required`)
	}
	h.raw(`><option value="">Choose…</option>`)
	for _, s := range subs {
		h.raw(`<option value="`, esc(s.Name), `"`)
		if s.Name == selected {
			h.raw(` selected`)
		}
		h.raw(`>`, esc(s.Name), `</option>`)
	}
	h.raw(`</select></label>`)
}

func productFields(h *html, p model.Product, subs []model.Subcategory, create bool) {
	input(h, "Name", "name", "text", p.Name, create)
	input(h, "Price", "price", "number", strconv.FormatFloat(p.Price, 'f', 2, 64), create)
	textarea(h, "Description", "description", p.Description)
	subcategorySelect(h, subs, p.SubcategoryName, create)
	input(h, "Brand", "brand", "text", p.Brand, false)
	input(h, "Rating", "rating", "number", strconv.FormatFloat(p.Rating, 'f', 1, 64), false)
	input(h, "Quantity", "quantity", "number", strconv.Itoa(p.Quantity), false)
	h.raw(`<label>Image <input type="file" name="image" accept=".jpg,.jpeg,.png"`)
	if create {
		h.raw(` required`)
	}
	h.raw(`></label>`)
}

// ProductUpload is the new product form.
func ProductUpload(subcategories service.SubcategoryService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		subs, err := subcategories.List(ctx)
		if err != nil {
			return fmt.Errorf("list subcategories: %w", err)
		}
		heading(h, "Add product")
		h.raw(`<form class="stack" data-api="/api/products" data-method="POST" data-multipart data-redirect="/upload" enctype="multipart/form-data">`)
		productFields(h, model.Product{}, subs, true)
		h.raw(`<button type="submit">Create</button>`)
		result(h)
		h.raw(`</form>`)
		return nil
	})
}

// UpdateProduct edits the product named by the :productId segment.
func UpdateProduct(products service.ProductService, subcategories service.SubcategoryService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		id, err := parseID("product id", shell.Param(ctx, "productId"))
		if err != nil {
			return err
		}
		p, err := products.Get(ctx, id)
		if err != nil {
			return err
		}
		subs, err := subcategories.List(ctx)
		if err != nil {
			return fmt.Errorf("list subcategories: %w", err)
		}

		heading(h, "Edit product")
		if p.Image != "" {
			h.raw(`<img class="preview" src="`, esc(p.Image), `" alt="`, esc(p.Name), `">`)
		}
		h.raw(`<form class="stack" data-api="/api/products/`, idString(p.ID), `" data-method="PUT" data-multipart data-redirect="/upload" enctype="multipart/form-data">`)
		productFields(h, *p, subs, false)
		h.raw(`<button type="submit">Save</button>`)
		result(h)
		h.raw(`</form>`)
		return nil
	})
}
