// Package shell serves the storefront's HTML pages. Each route renders its
// components inside a navigation frame; a component that fails to load or
// render turns into an error page for that request only.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"storefront/internal/logging"
	"storefront/internal/service"
	"storefront/internal/web/lazy"
)

// Options configures Register.
type Options struct {
	SiteName string
	StoreNav templ.Component
	AdminNav templ.Component
	Logger   log.FieldLogger
}

// Mount registers the full page route table built from cat.
func Mount(r fiber.Router, cat *Catalog, opts Options) {
	if opts.StoreNav == nil {
		opts.StoreNav = cat.StoreNav
	}
	if opts.AdminNav == nil {
		opts.AdminNav = cat.AdminNav
	}
	Register(r, Routes(cat), opts)
}

// Register adds a GET handler per route.
func Register(r fiber.Router, routes []Route, opts Options) {
	if opts.SiteName == "" {
		opts.SiteName = "Storefront"
	}
	opts.Logger = logging.OrDiscard(opts.Logger).WithField("component", "shell")
	for _, rt := range routes {
		r.Get(rt.Path, page(rt, opts))
	}
}

func page(rt Route, opts Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := withRequest(c.UserContext(), c)

		if err := lazy.Preload(ctx, rt.lazyComponents()...); err != nil {
			return fail(ctx, c, rt, opts, err)
		}

		var buf bytes.Buffer
		if err := Document(opts.SiteName, rt.Title, frame(rt, opts, content(rt))).Render(ctx, &buf); err != nil {
			return fail(ctx, c, rt, opts, err)
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	}
}

func content(rt Route) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(rt.Children) > 0 {
			ctx = templ.WithChildren(ctx, sequence(rt.Children))
		}
		return sequence(rt.Components).Render(ctx, w)
	})
}

func sequence(comps []*lazy.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, comp := range comps {
			if err := comp.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func frame(rt Route, opts Options, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		switch rt.Chrome {
		case ChromeAdmin:
			if _, err := io.WriteString(w, `<div class="admin-layout">`); err != nil {
				return err
			}
			if err := renderOptional(ctx, w, opts.AdminNav); err != nil {
				return err
			}
			if err := wrap(ctx, w, `<main class="admin-main">`, body, `</main></div>`); err != nil {
				return err
			}
			return nil
		case ChromeStore:
			if err := renderOptional(ctx, w, opts.StoreNav); err != nil {
				return err
			}
		}
		return wrap(ctx, w, `<main class="container">`, body, `</main>`)
	})
}

func renderOptional(ctx context.Context, w io.Writer, c templ.Component) error {
	if c == nil {
		return nil
	}
	return c.Render(ctx, w)
}

func wrap(ctx context.Context, w io.Writer, open string, body templ.Component, end string) error {
	if _, err := io.WriteString(w, open); err != nil {
		return err
	}
	if err := body.Render(ctx, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, end)
	return err
}

// StatusFor maps a component failure to the page status.
func StatusFor(err error) int {
	var loadErr *lazy.LoadError
	switch {
	case errors.As(err, &loadErr):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(ctx context.Context, c *fiber.Ctx, rt Route, opts Options, cause error) error {
	status := StatusFor(cause)
	entry := opts.Logger.WithFields(log.Fields{
		"route":  rt.Name,
		"path":   c.Path(),
		"status": status,
	}).WithError(cause)
	if status >= fiber.StatusInternalServerError {
		entry.Error("page render failed")
	} else {
		entry.Warn("page render rejected")
	}

	title, message := errorText(status, cause)
	var buf bytes.Buffer
	doc := Document(opts.SiteName, title, frame(rt, opts, errorBox(title, message, c.OriginalURL())))
	if err := doc.Render(ctx, &buf); err != nil {
		return c.Status(status).SendString(message)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func errorText(status int, cause error) (string, string) {
	switch status {
	case fiber.StatusNotFound:
		return "Not found", cause.Error()
	case fiber.StatusBadRequest:
		return "Bad request", cause.Error()
	case fiber.StatusServiceUnavailable:
		return "Temporarily unavailable", "Part of this page could not be loaded. Please try again."
	default:
		return "Something went wrong", "An unexpected error occurred."
	}
}

func errorBox(title, msg, retry string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="error-boundary" role="alert"><h1>`+
			templ.EscapeString(title)+`</h1><p>`+templ.EscapeString(msg)+
			`</p><a class="button" href="`+templ.EscapeString(retry)+`">Try again</a></section>`)
		return err
	})
}
