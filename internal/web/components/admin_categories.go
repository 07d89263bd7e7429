package components

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/web/shell"
)

// AdminCategory is the admin category table.
func AdminCategory(categories service.CategoryService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		cats, err := categories.List(ctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		heading(h, "Categories")
		h.raw(`<p><a class="button" href="/add-category">Add category</a></p>`)
		h.raw(`<table><thead><tr><th>Image</th><th>Name</th><th>Description</th><th></th></tr></thead><tbody>`)
		for _, c := range cats {
			id := idString(c.ID)
			h.raw(`<tr><td>`)
			if c.Image != "" {
				h.raw(`<img class="thumb" src="`, esc(c.Image), `" alt="" width="48">`)
			}
			h.raw(`</td><td>`, esc(c.Name), `</td><td>`, esc(c.Description), `</td><td>`)
			h.raw(`<a href="/update-category/`, id, `">Edit</a> `)
			deleteButton(h, "/api/categories/"+id, c.Name)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
		result(h)
		return nil
	})
}

func categoryForm(h *html, api, method string, c model.Category, create bool) {
	h.raw(`<form class="stack" data-api="`, api, `" data-method="`, method, `" data-multipart data-redirect="/admin-categories" enctype="multipart/form-data">`)
	input(h, "Name", "name", "text", c.Name, create)
	textarea(h, "Description", "description", c.Description)
	h.raw(`<label>Image <input type="file" name="image" accept=".jpg,.jpeg,.png"`)
	if create {
		h.raw(` required`)
	}
	h.raw(`></label><button type="submit">Save</button>`)
	result(h)
	h.raw(`</form>`)
}

// AddCategory is the new category form. An image is required.
func AddCategory() templ.Component {
	return component(func(_ context.Context, h *html) error {
		heading(h, "Add category")
		categoryForm(h, "/api/categories", "POST", model.Category{}, true)
		return nil
	})
}

// UpdateCategory edits the category named by the :id segment.
func UpdateCategory(categories service.CategoryService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		id, err := parseID("category id", shell.Param(ctx, "id"))
		if err != nil {
			return err
		}
		c, err := categories.Get(ctx, id)
		if err != nil {
			return err
		}
		heading(h, "Edit category")
		if c.Image != "" {
			h.raw(`<img class="preview" src="`, esc(c.Image), `" alt="`, esc(c.Name), `">`)
		}
		categoryForm(h, "/api/categories/"+idString(c.ID), "PUT", *c, false)
		return nil
	})
}

// AdminSubCategory is the admin subcategory table.
func AdminSubCategory(subcategories service.SubcategoryService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		subs, err := subcategories.List(ctx)
		if err != nil {
			return fmt.Errorf("list subcategories: %w", err)
		}
		heading(h, "Subcategories")
		h.raw(`<p><a class="button" href="/add-subcategory">Add subcategory</a></p>`)
		h.raw(`<table><thead><tr><th>Name</th><th>Category</th><th>Description</th><th></th></tr></thead><tbody>`)
		for _, s := range subs {
			id := idString(s.ID)
			h.raw(`<tr><td><a href="/products/`, id, `">`, esc(s.Name), `</a></td><td>`, esc(s.CategoryName), `</td><td>`, esc(s.Description), `</td><td>`)
			h.raw(`<a href="/edit-subcategory/`, id, `">Edit</a> `)
			deleteButton(h, "/api/subcategories/"+id, s.Name)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
		result(h)
		return nil
	})
}

func subcategoryForm(h *html, api, method string, s model.Subcategory, cats []model.Category) {
	h.raw(`<form class="stack" data-api="`, api, `" data-method="`, method, `" data-redirect="/adminsubcategory">`)
	input(h, "Name", "name", "text", s.Name, s.ID == 0)
	textarea(h, "Description", "description", s.Description)
	h.raw(`<label>Category <select name="category_id" data-number required><option value="">Choose…</option>`)
	for _, c := range cats {
		h.raw(`<option value="`, idString(c.ID), `"`)
		if c.ID == s.CategoryID {
			h.raw(` selected`)
		}
		h.raw(`>`, esc(c.Name), `</option>`)
	}
	h.raw(`</select></label><button type="submit">Save</button>`)
	result(h)
	h.raw(`</form>`)
}

// AddSubCategory is the new subcategory form.
func AddSubCategory(categories service.CategoryService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		cats, err := categories.List(ctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		heading(h, "Add subcategory")
		subcategoryForm(h, "/api/subcategories", "POST", model.Subcategory{}, cats)
		return nil
	})
}

// EditSubCategory edits the subcategory named by the :id segment.
func EditSubCategory(subcategories service.SubcategoryService, categories service.CategoryService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		id, err := parseID("subcategory id", shell.Param(ctx, "id"))
		if err != nil {
			return err
		}
		s, err := subcategories.Get(ctx, id)
		if err != nil {
			return err
		}
		cats, err := categories.List(ctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		heading(h, "Edit subcategory")
		subcategoryForm(h, "/api/subcategories/"+idString(s.ID), "PUT", *s, cats)
		return nil
	})
}
