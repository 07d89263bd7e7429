package components

import (
	"context"
	"fmt"
	"strconv"

	"github.com/a-h/templ"
	log "github.com/sirupsen/logrus"

	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
)

const shelfSize = 8

// Pics is the home page banner strip. Banners that cannot be resolved are
// skipped; the page still renders.
func Pics(banners BannerSource, logger log.FieldLogger) templ.Component {
	logger = logging.OrDiscard(logger)
	return component(func(ctx context.Context, h *html) error {
		var urls []string
		if banners != nil {
			var err error
			urls, err = banners.BannerURLs(ctx)
			if err != nil {
				logger.WithError(err).Warn("banner lookup failed")
			}
		}
		h.raw(`<section class="banner">`)
		if len(urls) == 0 {
			h.raw(`<h2>Welcome</h2><p>Browse the catalogue by category below.</p>`)
		}
		for i, u := range urls {
			h.printf(`<img src="%s" alt="banner %d">`, esc(u), i+1)
		}
		h.raw(`</section>`)
		return nil
	})
}

// Carousel lists categories with their subcategories linked to product pages.
func Carousel(categories service.CategoryService, subcategories service.SubcategoryService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		cats, err := categories.List(ctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		subs, err := subcategories.List(ctx)
		if err != nil {
			return fmt.Errorf("list subcategories: %w", err)
		}
		byCategory := make(map[int64][]model.Subcategory)
		for _, s := range subs {
			byCategory[s.CategoryID] = append(byCategory[s.CategoryID], s)
		}

		h.raw(`<section class="categories"><h2>Shop by category</h2><div class="carousel">`)
		for _, c := range cats {
			h.raw(`<article class="card category">`)
			if c.Image != "" {
				h.raw(`<img src="`, esc(c.Image), `" alt="`, esc(c.Name), `" loading="lazy">`)
			}
			h.raw(`<h3>`, esc(c.Name), `</h3><ul>`)
			for _, s := range byCategory[c.ID] {
				h.raw(`<li><a href="/products/`, idString(s.ID), `">`, esc(s.Name), `</a></li>`)
			}
			h.raw(`</ul></article>`)
		}
		h.raw(`</div></section>`)
		return nil
	})
}

func shelf(products service.ProductService, class, title, sort string) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		res, err := products.List(ctx, shelfSize, 0, sort)
		if err != nil {
			return fmt.Errorf("list %s products: %w", sort, err)
		}
		h.raw(`<section class="shelf `, class, `"><h2>`, esc(title), `</h2>`)
		productGrid(h, res.Items)
		h.raw(`</section>`)
		return nil
	})
}

// Top shows the best rated products.
func Top(products service.ProductService) templ.Component {
	return shelf(products, "top-rated", "Top rated", repository.SortRating)
}

// Top2 shows the newest products.
func Top2(products service.ProductService) templ.Component {
	return shelf(products, "new-arrivals", "New arrivals", repository.SortNewest)
}

// Top3 shows the cheapest products.
func Top3(products service.ProductService) templ.Component {
	return shelf(products, "best-value", "Best value", repository.SortPriceAsc)
}

// AdminDashboard shows catalogue totals above its children.
func AdminDashboard(products service.ProductService, categories service.CategoryService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		res, err := products.List(ctx, 1, 0, repository.SortNewest)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		cats, err := categories.List(ctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}

		h.raw(`<section class="dashboard">`)
		heading(h, "Dashboard")
		h.raw(`<div class="stats">`)
		h.raw(`<div class="card"><strong>`, strconv.Itoa(res.Total), `</strong> products</div>`)
		h.raw(`<div class="card"><strong>`, strconv.Itoa(len(cats)), `</strong> categories</div>`)
		h.raw(`</div>`)
		h.render(ctx, children)
		h.raw(`</section>`)
		return nil
	})
}
