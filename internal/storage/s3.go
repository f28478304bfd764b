// Package storage issues time-boxed pre-signed S3 upload URLs for
// post media. The core never touches object contents; clients PUT
// directly against the signed URL.
package storage

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"pressroom/internal/config"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// AllowedFileType reports whether fileType may be uploaded.
func AllowedFileType(fileType string) bool {
	return allowedImageTypes[fileType]
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

// UploadTicket is the response to an upload-URL request: where to PUT
// the object and where it will be publicly readable afterwards.
type UploadTicket struct {
	UploadURL string `json:"uploadURL"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
}

type Uploader struct {
	cfg config.S3Config
	now func() time.Time
}

func NewUploader(cfg config.S3Config) *Uploader {
	return &Uploader{cfg: cfg, now: time.Now}
}

func (u *Uploader) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(u.cfg.Region),
	}
	if u.cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(u.cfg.AccessKey, u.cfg.SecretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if u.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(u.cfg.Endpoint)
		}
	})
	return s3.NewPresignClient(client), nil
}

// PresignPut returns a pre-signed PUT URL for a sanitized object key
// derived from fileName, valid for the configured TTL.
func (u *Uploader) PresignPut(ctx context.Context, fileName, fileType string) (*UploadTicket, error) {
	if !AllowedFileType(fileType) {
		return nil, fmt.Errorf("storage: file type %q not allowed", fileType)
	}

	client, err := u.presignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("building presign client: %w", err)
	}

	key := u.objectKey(fileName)
	req, err := client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, s3.WithPresignExpires(u.cfg.URLTTL))
	if err != nil {
		return nil, fmt.Errorf("presigning put: %w", err)
	}

	return &UploadTicket{
		UploadURL: req.URL,
		PublicURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key),
		Key:       key,
	}, nil
}

func (u *Uploader) objectKey(fileName string) string {
	safe := unsafeKeyChars.ReplaceAllString(fileName, "-")
	return fmt.Sprintf("%s/%d-%s", u.cfg.KeyPrefix, u.now().UnixMilli(), safe)
}
