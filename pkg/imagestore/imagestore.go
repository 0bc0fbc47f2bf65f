// Package imagestore uploads product images to an external CDN and hands
// back durable URLs. The concrete implementation talks to Cloudinary; the
// Uploader interface exists so services can be tested without the network.
package imagestore

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader ingests an image payload and returns a publicly resolvable URL.
// The payload may be raw bytes wrapped in a reader, a base64 data URI, or an
// existing URL (which is passed through unchanged).
type Uploader interface {
	Upload(ctx context.Context, payload interface{}, folder string) (string, error)
}

// Config holds Cloudinary connection details.
type Config struct {
	// URL is a cloudinary:// connection string (api key, secret, cloud name).
	URL string
	// Folder is the logical folder every upload lands in.
	Folder string
}

// CloudinaryUploader is the Cloudinary-backed Uploader.
type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryUploader creates a new CloudinaryUploader from a
// cloudinary:// connection URL.
func NewCloudinaryUploader(cfg Config) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary client: %w", err)
	}
	return &CloudinaryUploader{client: cld}, nil
}

// Upload sends the payload to Cloudinary and returns the secure URL.
// String payloads that are already http(s) URLs are returned as-is so that
// update requests can resubmit an existing image without re-uploading it.
func (u *CloudinaryUploader) Upload(ctx context.Context, payload interface{}, folder string) (string, error) {
	if s, ok := payload.(string); ok && IsRemoteURL(s) {
		return s, nil
	}

	result, err := u.client.Upload.Upload(ctx, payload, uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload rejected: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

// IsRemoteURL reports whether s already points at a hosted image.
func IsRemoteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
