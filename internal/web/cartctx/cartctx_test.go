package cartctx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cacheMocks "storefront/internal/cache/mocks"
	"storefront/internal/model"
)

type seen struct {
	Session string `json:"session"`
	Count   int    `json:"count"`
}

func newApp(store Loader) *fiber.App {
	app := fiber.New()
	app.Use(Provider(store, Options{TTL: time.Hour}))
	app.Get("/", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		return c.JSON(seen{Session: SessionID(ctx), Count: FromContext(ctx).Count()})
	})
	return app
}

func decode(t *testing.T, app *fiber.App, cookie string) (seen, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if cookie != "" {
		req.Header.Set("Cookie", "cart_session="+cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out seen
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	var set string
	for _, ck := range resp.Cookies() {
		if ck.Name == "cart_session" {
			set = ck.Value
		}
	}
	return out, set
}

func TestProviderIssuesSession(t *testing.T) {
	store := new(cacheMocks.MockCartStore)
	store.On("Get", mock.Anything, mock.Anything).Return(nil, nil)

	out, cookie := decode(t, newApp(store), "")
	_, err := uuid.Parse(out.Session)
	assert.NoError(t, err)
	assert.Equal(t, out.Session, cookie)
	assert.Zero(t, out.Count)
}

func TestProviderReusesValidSession(t *testing.T) {
	sid := uuid.NewString()
	store := new(cacheMocks.MockCartStore)
	store.On("Get", mock.Anything, sid).Return(&model.Cart{SessionID: sid, Items: []model.CartItem{{ProductID: 1, Quantity: 3}}}, nil)

	out, cookie := decode(t, newApp(store), sid)
	assert.Equal(t, sid, out.Session)
	assert.Equal(t, sid, cookie)
	assert.Equal(t, 3, out.Count)
	store.AssertExpectations(t)
}

func TestProviderReplacesForgedSession(t *testing.T) {
	store := new(cacheMocks.MockCartStore)
	store.On("Get", mock.Anything, mock.Anything).Return(nil, nil)

	out, _ := decode(t, newApp(store), "../../etc")
	assert.NotEqual(t, "../../etc", out.Session)
}

func TestProviderDegradesOnStoreFailure(t *testing.T) {
	store := new(cacheMocks.MockCartStore)
	store.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	out, _ := decode(t, newApp(store), "")
	assert.NotEmpty(t, out.Session)
	assert.Zero(t, out.Count)
}

func TestFromContextOutsideProvider(t *testing.T) {
	ctx := context.Background()
	assert.NotNil(t, FromContext(ctx))
	assert.Zero(t, FromContext(ctx).Count())
	assert.Empty(t, SessionID(ctx))
}
