package components

import (
	"context"
	"time"

	"storefront/internal/storage"
)

// BannerSource lists the image URLs shown at the top of the home page.
type BannerSource interface {
	BannerURLs(ctx context.Context) ([]string, error)
}

// StorageBanners presigns a fixed list of object keys.
type StorageBanners struct {
	Store storage.Storage
	Keys  []string
	TTL   time.Duration
}

func (b StorageBanners) BannerURLs(ctx context.Context) ([]string, error) {
	ttl := b.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	urls := make([]string, 0, len(b.Keys))
	for _, key := range b.Keys {
		u, err := b.Store.PresignGet(ctx, key, ttl)
		if err != nil {
			return urls, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}
