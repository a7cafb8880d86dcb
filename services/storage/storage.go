package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"shopspotlight/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Buckets for user-supplied images. Each maps to a Cloudinary folder.
const (
	BucketProfilePhotos = "profile-photos"
	BucketShopImages    = "shop-images"
)

// AllowedBucket reports whether the bucket accepts uploads.
func AllowedBucket(bucket string) bool {
	return bucket == BucketProfilePhotos || bucket == BucketShopImages
}

// StorageService stores user-supplied images and hands back public URLs.
type StorageService interface {
	// Upload stores the file under {bucket}/{ownerID}/{random}.{ext} and
	// returns its public URL. The original filename only contributes its
	// extension, so uploads never collide.
	Upload(ctx context.Context, bucket, ownerID, filename string, r io.Reader) (string, error)
	// Delete removes a previously uploaded file by its public ID.
	Delete(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage builds the storage service from the app configuration.
func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

func (s *CloudinaryStorage) Upload(ctx context.Context, bucket, ownerID, filename string, r io.Reader) (string, error) {
	if !AllowedBucket(bucket) {
		return "", fmt.Errorf("unknown bucket %q", bucket)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	publicID := ownerID + "/" + uuid.NewString()
	if ext != "" {
		publicID += "." + ext
	}

	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   bucket,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload returned no URL")
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
