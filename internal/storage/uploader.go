// internal/storage/uploader.go
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/sanjaykumar079/farmer-backend/internal/common/aws"
	"github.com/sanjaykumar079/farmer-backend/internal/common/config"
	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
	"github.com/sanjaykumar079/farmer-backend/internal/common/logger"
)

// ObjectPutter is the slice of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

// Uploader stores query images in S3 and hands back a public URL.
type Uploader struct {
	putter        ObjectPutter
	bucket        string
	publicBaseURL string
	logger        logger.Logger
}

func NewUploader(client *aws.S3Client, cfg config.StorageConfig, log logger.Logger) *Uploader {
	return &Uploader{
		putter:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:        log,
	}
}

// NewUploaderWithPutter is for tests that stub the S3 round trip.
func NewUploaderWithPutter(putter ObjectPutter, bucket, publicBaseURL string, log logger.Logger) *Uploader {
	return &Uploader{
		putter:        putter,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        log,
	}
}

// UploadQueryImage stores an image under queries/<farmer_id>/<uuid>-<filename>
// and returns its public URL. The random prefix keeps repeated filenames from
// one farmer from colliding.
func (u *Uploader) UploadQueryImage(ctx context.Context, farmerID, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("queries/%s/%s-%s", farmerID, uuid.New().String(), sanitizeFilename(filename))

	_, err := u.putter.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(u.bucket),
		Key:         awssdk.String(key),
		Body:        bytes.NewReader(data),
		ContentType: awssdk.String(contentType),
	})
	if err != nil {
		u.logger.WithError(err).Error("Image upload failed", map[string]interface{}{
			"bucket": u.bucket,
			"key":    key,
		})
		return "", errors.NewStorageUploadFailedError(key, err)
	}

	url := u.publicBaseURL + "/" + key
	u.logger.Info("Image uploaded", map[string]interface{}{
		"key": key,
		"url": url,
	})
	return url, nil
}

// sanitizeFilename strips any path components and whitespace from an
// uploaded filename before it becomes part of an object key.
func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == "/" || base == "" {
		return "upload"
	}
	return base
}
