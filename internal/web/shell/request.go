package shell

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type requestKey struct{}

type request struct {
	path   string
	params map[string]string
	query  map[string]string
}

func withRequest(ctx context.Context, c *fiber.Ctx) context.Context {
	req := &request{
		path:   c.Path(),
		params: make(map[string]string),
		query:  c.Queries(),
	}
	for _, name := range c.Route().Params {
		req.params[name] = c.Params(name)
	}
	return context.WithValue(ctx, requestKey{}, req)
}

// WithParams returns ctx carrying the given route parameters and query. It
// lets components be rendered outside a request.
func WithParams(ctx context.Context, path string, params, query map[string]string) context.Context {
	if params == nil {
		params = map[string]string{}
	}
	if query == nil {
		query = map[string]string{}
	}
	return context.WithValue(ctx, requestKey{}, &request{path: path, params: params, query: query})
}

// Param returns the named path segment captured by the current route, unchanged.
func Param(ctx context.Context, name string) string {
	if req, ok := ctx.Value(requestKey{}).(*request); ok {
		return req.params[name]
	}
	return ""
}

// Query returns a query string value of the current request.
func Query(ctx context.Context, name string) string {
	if req, ok := ctx.Value(requestKey{}).(*request); ok {
		return req.query[name]
	}
	return ""
}

// Path returns the request path being rendered.
func Path(ctx context.Context) string {
	if req, ok := ctx.Value(requestKey{}).(*request); ok {
		return req.path
	}
	return ""
}
