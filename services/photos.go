package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/studyhive/studyhive/config"
)

// PhotoStorage hands out presigned upload URLs for check-in photos against
// an S3-compatible object store. Clients upload directly; the backend only
// ever sees the resulting public URL.
type PhotoStorage struct {
	presign    *s3.PresignClient
	bucket     string
	publicBase string
}

// NewPhotoStorage builds the storage client from configuration. Returns an
// error when the store is not configured; callers treat that as the feature
// being disabled.
func NewPhotoStorage(cfg config.AppConfig) (*PhotoStorage, error) {
	if cfg.S3Bucket == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return nil, fmt.Errorf("photo storage not configured")
	}

	endpoint := cfg.S3Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.S3Region)
	}
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: endpoint}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithRegion(cfg.S3Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)

	publicBase := cfg.S3PublicBase
	if publicBase == "" {
		publicBase = fmt.Sprintf("%s/%s", strings.TrimSuffix(endpoint, "/"), cfg.S3Bucket)
	}

	return &PhotoStorage{
		presign:    s3.NewPresignClient(client),
		bucket:     cfg.S3Bucket,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}, nil
}

// PhotoUpload is a presigned upload slot: PUT the image to UploadURL, then
// reference PhotoURL from the check-in.
type PhotoUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PhotoURL  string `json:"photo_url"`
	ExpiresIn int    `json:"expires_in"`
}

// PresignUpload creates a one-off upload URL for a new photo object owned by
// the given user.
func (p *PhotoStorage) PresignUpload(ctx context.Context, userID uint, contentType string) (*PhotoUpload, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, invalidArgument("content type must be an image")
	}

	const validity = 15 * time.Minute
	key := fmt.Sprintf("photos/%d/%s.jpg", userID, uuid.NewString())

	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return nil, fmt.Errorf("presign photo upload: %w", err)
	}

	return &PhotoUpload{
		Key:       key,
		UploadURL: req.URL,
		PhotoURL:  fmt.Sprintf("%s/%s", p.publicBase, key),
		ExpiresIn: int(validity.Seconds()),
	}, nil
}
