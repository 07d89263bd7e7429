package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/config"
)

func TestNewMinIORejectsIncompleteConfig(t *testing.T) {
	cases := map[string]struct {
		cfg  config.MinIOConfig
		want string
	}{
		"empty": {
			config.MinIOConfig{},
			"missing MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY, MINIO_BUCKET",
		},
		"no secret": {
			config.MinIOConfig{Endpoint: "minio:9000", AccessKey: "shop", Bucket: "images"},
			"missing MINIO_SECRET_KEY",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			st, err := NewMinIO(context.Background(), tc.cfg, nil)
			assert.Nil(t, st)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}
