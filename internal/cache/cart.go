// Package cache holds the Redis-backed session cart store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/config"
	"storefront/internal/model"
)

// maxTxRetries bounds optimistic-lock retries in Update.
const maxTxRetries = 5

// ErrConflict is returned when a cart kept changing underneath Update.
var ErrConflict = errors.New("cart update conflict")

// CartStore keeps session carts.
type CartStore interface {
	// Get returns the session's cart, or an empty cart when none is stored.
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	// Update applies fn to the session's cart atomically and stores the result.
	// Returning an error from fn aborts without writing.
	Update(ctx context.Context, sessionID string, fn func(*model.Cart) error) (*model.Cart, error)
	// Delete removes the session's cart.
	Delete(ctx context.Context, sessionID string) error
}

// RedisCartStore stores carts as JSON values with a sliding TTL.
type RedisCartStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisClient opens a client for cfg and verifies connectivity.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewRedisCartStore creates a cart store on client. A non-positive ttl keeps carts forever.
func NewRedisCartStore(client redis.UniversalClient, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client: client,
		prefix: "storefront:cart:",
		ttl:    ttl,
		now:    time.Now,
	}
}

var _ CartStore = (*RedisCartStore)(nil)

func (s *RedisCartStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func decodeCart(sessionID string, raw []byte) (*model.Cart, error) {
	cart := &model.Cart{SessionID: sessionID}
	if len(raw) == 0 {
		cart.Items = []model.CartItem{}
		return cart, nil
	}
	if err := json.Unmarshal(raw, cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	cart.SessionID = sessionID
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart, nil
}

// Get reads the cart and pushes its expiry out by the store TTL.
func (s *RedisCartStore) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	key := s.key(sessionID)
	var cmd *redis.StringCmd
	if s.ttl > 0 {
		cmd = s.client.GetEx(ctx, key, s.ttl)
	} else {
		cmd = s.client.Get(ctx, key)
	}
	raw, err := cmd.Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return decodeCart(sessionID, raw)
}

// Update runs fn under WATCH so concurrent writers to the same session are
// serialized; losers of the race retry with the fresh value.
func (s *RedisCartStore) Update(ctx context.Context, sessionID string, fn func(*model.Cart) error) (*model.Cart, error) {
	key := s.key(sessionID)
	var out *model.Cart

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		cart, err := decodeCart(sessionID, raw)
		if err != nil {
			return err
		}
		if err := fn(cart); err != nil {
			return err
		}
		cart.UpdatedAt = s.now().UTC()
		payload, err := json.Marshal(cart)
		if err != nil {
			return fmt.Errorf("encode cart: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		if err == nil {
			out = cart
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrConflict
}

func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
