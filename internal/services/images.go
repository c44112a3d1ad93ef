package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"yatube/internal/storage"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// ErrInvalidImage is returned for uploads that are not a decodable image.
var ErrInvalidImage = errors.New("upload a valid image; the file you uploaded was either not an image or a corrupted image")

// ErrImageTooLarge is returned for images whose declared dimensions exceed
// the pixel limit. They are rejected before any pixel data is decoded.
var ErrImageTooLarge = errors.New("image dimensions are too large")

const (
	maxImageBytes  = 10 << 20
	maxImagePixels = 40_000_000
)

type ImageService struct {
	store     storage.Storage
	maxWidth  uint
	maxPixels int
}

func NewImageService(store storage.Storage, maxWidth int) *ImageService {
	if maxWidth < 0 {
		maxWidth = 0
	}
	return &ImageService{store: store, maxWidth: uint(maxWidth), maxPixels: maxImagePixels}
}

// Save decodes the upload, scales it down to the configured width and stores
// it under posts/. It returns the storage path.
func (s *ImageService) Save(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxImageBytes {
		return "", ErrInvalidImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", ErrInvalidImage
	}
	if cfg.Width > s.maxPixels/cfg.Height {
		return "", ErrImageTooLarge
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}

	var buf bytes.Buffer
	var mimeType, ext string
	switch format {
	case "gif":
		// animated gifs are stored as uploaded
		buf.Write(data)
		mimeType, ext = "image/gif", "gif"
	case "png":
		if err := png.Encode(&buf, s.scale(img)); err != nil {
			return "", err
		}
		mimeType, ext = "image/png", "png"
	case "jpeg":
		if err := jpeg.Encode(&buf, s.scale(img), &jpeg.Options{Quality: 85}); err != nil {
			return "", err
		}
		mimeType, ext = "image/jpeg", "jpg"
	default:
		return "", ErrInvalidImage
	}

	path := fmt.Sprintf("posts/%s.%s", uuid.NewString(), ext)
	if err := s.store.Save(ctx, path, &buf, mimeType); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return path, nil
}

func (s *ImageService) scale(img image.Image) image.Image {
	if s.maxWidth == 0 || uint(img.Bounds().Dx()) <= s.maxWidth {
		return img
	}
	return resize.Resize(s.maxWidth, 0, img, resize.Lanczos3)
}

func (s *ImageService) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	return s.store.Delete(ctx, path)
}

func (s *ImageService) URL(path string) string {
	if path == "" {
		return ""
	}
	return s.store.URL(path)
}
