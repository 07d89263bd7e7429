package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"storefront/internal/logging"
)

// MaxImageSize is the largest accepted image upload.
const MaxImageSize = 5 << 20

var (
	ErrEmptyFile       = errors.New("file cannot be empty")
	ErrFileTooLarge    = errors.New("file too large, max size is 5MB")
	ErrUnsupportedType = errors.New("unsupported file type, allowed types: jpg, jpeg, png")
	ErrInvalidImage    = errors.New("invalid image file")
)

var allowedExtensions = []string{".jpg", ".jpeg", ".png"}

// Upload is an image received from a client.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// ImageStore persists product and category images and hands out their public URLs.
type ImageStore interface {
	Upload(ctx context.Context, up Upload) (string, error)
	// Delete removes the image behind url. URLs not served by this store are ignored.
	Delete(ctx context.Context, url string) error
}

type imageStore struct {
	store   Storage
	baseURL string
	logger  log.FieldLogger
}

// NewImageStore builds an ImageStore on store. Stored keys are published as
// baseURL + "/" + key.
func NewImageStore(store Storage, baseURL string, logger log.FieldLogger) ImageStore {
	return &imageStore{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logging.OrDiscard(logger).WithField("component", "images"),
	}
}

type validImage struct {
	data        []byte
	contentType string
}

// validate reads the upload fully (bounded by MaxImageSize) and checks
// extension, magic bytes and decodability.
func validate(up Upload) (*validImage, error) {
	if up.Body == nil || up.Size == 0 {
		return nil, ErrEmptyFile
	}
	if up.Size > MaxImageSize {
		return nil, ErrFileTooLarge
	}
	if !hasAllowedExtension(up.Filename) {
		return nil, ErrUnsupportedType
	}

	data, err := io.ReadAll(io.LimitReader(up.Body, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > MaxImageSize {
		return nil, ErrFileTooLarge
	}

	mt := mimetype.Detect(data)
	if !mt.Is("image/jpeg") && !mt.Is("image/png") {
		return nil, ErrInvalidImage
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, ErrInvalidImage
	}
	return &validImage{data: data, contentType: mt.String()}, nil
}

func hasAllowedExtension(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, a := range allowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// objectKey is images/<uuid>_<filename with spaces removed>.
func objectKey(filename string) string {
	name := strings.ReplaceAll(path.Base(filename), " ", "")
	return "images/" + uuid.NewString() + "_" + name
}

func (s *imageStore) Upload(ctx context.Context, up Upload) (string, error) {
	img, err := validate(up)
	if err != nil {
		return "", err
	}
	return s.put(ctx, up.Filename, img)
}

func (s *imageStore) put(ctx context.Context, filename string, img *validImage) (string, error) {
	key := objectKey(filename)
	if _, err := s.store.Put(ctx, key, bytes.NewReader(img.data), PutObjectOptions{
		Size:        int64(len(img.data)),
		ContentType: img.contentType,
		Metadata:    map[string]string{"original-filename": filename},
	}); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	url := s.baseURL + "/" + key
	s.logger.WithFields(log.Fields{"key": key, "size": len(img.data)}).Info("image uploaded")
	return url, nil
}

func (s *imageStore) Delete(ctx context.Context, url string) error {
	key, ok := s.keyFor(url)
	if !ok {
		return nil
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	s.logger.WithField("key", key).Info("image deleted")
	return nil
}

func (s *imageStore) keyFor(url string) (string, bool) {
	prefix := s.baseURL + "/"
	if url == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
