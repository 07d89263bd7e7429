// Package cartctx makes the session cart available to every request.
package cartctx

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"storefront/internal/logging"
	"storefront/internal/model"
)

// Loader reads a session's cart.
type Loader interface {
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
}

// Options configures Provider.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	Logger     log.FieldLogger
}

type ctxKey struct{}

type state struct {
	sessionID string
	cart      *model.Cart
}

// Provider loads the caller's cart once per request and stores it in the
// user context. Callers without a valid session cookie get a new session.
// A failing store yields an empty cart; the request continues.
func Provider(store Loader, opts Options) fiber.Handler {
	if opts.CookieName == "" {
		opts.CookieName = "cart_session"
	}
	logger := logging.OrDiscard(opts.Logger).WithField("component", "cart_provider")

	return func(c *fiber.Ctx) error {
		sid := c.Cookies(opts.CookieName)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
		}
		cookie := &fiber.Cookie{
			Name:     opts.CookieName,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			Secure:   opts.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		}
		if opts.TTL > 0 {
			cookie.Expires = time.Now().Add(opts.TTL)
		}
		c.Cookie(cookie)

		ctx := c.UserContext()
		cart, err := store.Get(ctx, sid)
		if err != nil {
			logger.WithFields(log.Fields{"event": "cart_load_failed", "session_id": sid}).WithError(err).Error("serving empty cart")
			cart = nil
		}
		if cart == nil {
			cart = &model.Cart{SessionID: sid, Items: []model.CartItem{}}
		}

		c.SetUserContext(WithCart(ctx, sid, cart))
		return c.Next()
	}
}

// WithCart returns ctx carrying the session and its cart.
func WithCart(ctx context.Context, sessionID string, cart *model.Cart) context.Context {
	return context.WithValue(ctx, ctxKey{}, &state{sessionID: sessionID, cart: cart})
}

// FromContext returns the request's cart, or an empty cart outside Provider.
func FromContext(ctx context.Context) *model.Cart {
	if st, ok := ctx.Value(ctxKey{}).(*state); ok && st.cart != nil {
		return st.cart
	}
	return &model.Cart{Items: []model.CartItem{}}
}

// SessionID returns the request's cart session, or "" outside Provider.
func SessionID(ctx context.Context) string {
	if st, ok := ctx.Value(ctxKey{}).(*state); ok {
		return st.sessionID
	}
	return ""
}
