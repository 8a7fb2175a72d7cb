package s3infra

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/config"
	"github.com/shop-assistant-api/internal/infrastructure/awsclient"
)

// ObjectAPI is the part of *s3.Client the Store uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store keeps product and generated images in one bucket.
type Store struct {
	client  ObjectAPI
	bucket  string
	baseURL string
}

// NewClient creates an S3 client. When cfg.AWSEndpointURL is set (LocalStack),
// it overrides the endpoint and enables path-style addressing.
func NewClient(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	awsCfg, err := awsclient.Load(ctx, cfg, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	var clientOpts []func(*s3.Options)
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
			o.UsePathStyle = true
		})
	}
	return s3.NewFromConfig(awsCfg, clientOpts...), nil
}

// NewStore creates a Store for bucket. Object URLs are built from the
// LocalStack endpoint when one is configured, otherwise from the regional
// virtual-hosted address.
func NewStore(client ObjectAPI, cfg *config.Config) *Store {
	base := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3BucketName, cfg.AWSRegion)
	if cfg.AWSEndpointURL != "" {
		base = strings.TrimRight(cfg.AWSEndpointURL, "/") + "/" + cfg.S3BucketName
	}
	return &Store{client: client, bucket: cfg.S3BucketName, baseURL: base}
}

// Upload streams data to key and returns the object URL.
func (s *Store) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrapf(err, "s3 put object %s", key)
	}
	return s.ObjectURL(key), nil
}

// UploadBytes uploads data, sniffing its content type.
func (s *Store) UploadBytes(ctx context.Context, key string, data []byte) (string, error) {
	return s.Upload(ctx, key, bytes.NewReader(data), contentType(key, data))
}

// UploadBase64 decodes standard base64 data and uploads it.
func (s *Store) UploadBase64(ctx context.Context, key, b64Data string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(b64Data)
	if err != nil {
		return "", errors.Wrap(err, "decode base64")
	}
	return s.UploadBytes(ctx, key, decoded)
}

// Delete removes an object.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return errors.Wrapf(err, "s3 delete object %s", key)
}

// ObjectURL returns the public URL of key.
func (s *Store) ObjectURL(key string) string {
	return s.baseURL + "/" + key
}

// KeyFromURL reverses ObjectURL. ok is false for URLs outside this bucket.
func (s *Store) KeyFromURL(url string) (key string, ok bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

func contentType(key string, data []byte) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	return http.DetectContentType(data)
}
