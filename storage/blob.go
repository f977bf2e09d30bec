package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nammacity/city-buddy-api/models"
)

// MaxBlobSize is the largest accepted upload
const MaxBlobSize = 16 << 20 // 16MB

const uploadTimeout = 15 * time.Second

// Validation failures, rejected before any network call
var (
	ErrEmptyBlob         = errors.New("empty image payload")
	ErrBlobTooLarge      = errors.New("image exceeds the 16MB limit")
	ErrUnsupportedFormat = errors.New("unsupported image format, expected PNG, JPG, JPEG or GIF")
)

var extByContentType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
}

// ValidateImage checks size and sniffs the content type of an upload.
// Agents call this too, so a bad image never reaches the AI capability.
func ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyBlob
	}
	if len(data) > MaxBlobSize {
		return "", ErrBlobTooLarge
	}
	ct := http.DetectContentType(data)
	if _, ok := extByContentType[ct]; !ok {
		return "", ErrUnsupportedFormat
	}
	return ct, nil
}

// BlobStore persists uploaded images and returns a retrievable reference
type BlobStore interface {
	Put(ctx context.Context, data []byte) (string, models.StorageTier, error)
}

// TieredBlobStore uploads to Cloudinary first and falls back to the local
// uploads directory, mirroring the report store's fallback discipline.
type TieredBlobStore struct {
	cld       *cloudinary.Cloudinary
	uploadDir string
}

// NewTieredBlobStore builds the store. cloudinaryURL may be empty, in
// which case every put lands on disk.
func NewTieredBlobStore(cloudinaryURL, uploadDir string) (*TieredBlobStore, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload folder: %w", err)
	}
	s := &TieredBlobStore{uploadDir: uploadDir}
	if cloudinaryURL != "" {
		cld, err := cloudinary.NewFromURL(cloudinaryURL)
		if err != nil {
			zap.S().Warnw("cloudinary not configured, blob store running local-only", "error", err)
		} else {
			s.cld = cld
		}
	}
	return s, nil
}

// Put validates and stores the image, returning the reference and the
// tier that actually holds the bytes
func (s *TieredBlobStore) Put(ctx context.Context, data []byte) (string, models.StorageTier, error) {
	ct, err := ValidateImage(data)
	if err != nil {
		return "", "", err
	}

	name := fmt.Sprintf("%d_%s", time.Now().Unix(), uuid.New().String()[:8])

	if s.cld != nil {
		uctx, cancel := context.WithTimeout(ctx, uploadTimeout)
		defer cancel()
		resp, err := s.cld.Upload.Upload(uctx, bytes.NewReader(data), uploader.UploadParams{
			PublicID: name,
			Folder:   "citizen-reports",
		})
		if err == nil && resp != nil && resp.SecureURL != "" {
			return resp.SecureURL, models.TierRemote, nil
		}
		zap.S().Warnw("cloudinary upload failed, falling back to local storage",
			"publicId", name,
			"error", err,
		)
	}

	path := filepath.Join(s.uploadDir, name+extByContentType[ct])
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write image to local tier: %w", err)
	}
	return path, models.TierLocal, nil
}

// RemoteAvailable reports whether the Cloudinary tier was configured
func (s *TieredBlobStore) RemoteAvailable() bool {
	return s.cld != nil
}
