package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	intake_errors "form-intake/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	PublicBase string
}

// S3Store writes objects with PutObject. The container passed to Upload is the bucket.
type S3Store struct {
	cfg S3Config
	s3  *s3.Client
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Region == "" {
		return nil, errors.New("s3 region is required")
	}

	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	endpoint := ""
	if cfg.Endpoint != "" {
		parsed, err := url.Parse(cfg.Endpoint)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return nil, fmt.Errorf("invalid s3 endpoint %q", cfg.Endpoint)
		}
		endpoint = strings.TrimRight(parsed.String(), "/")
		cfg.Endpoint = endpoint
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{cfg: cfg, s3: s3Client}, nil
}

func (c *S3Store) Upload(ctx context.Context, container, key string, data []byte, contentType string) (string, error) {
	if c == nil {
		return "", errors.New("s3 client not initialized")
	}
	if container == "" || key == "" {
		return "", fmt.Errorf("%w: bucket and object key are required", intake_errors.ErrUploadFailed)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(container),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.s3.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%w: %w", intake_errors.ErrUploadFailed, err)
	}
	return c.FileURL(container, key), nil
}

// FileURL is the durable address of an uploaded object.
func (c *S3Store) FileURL(container, key string) string {
	if c == nil || key == "" {
		return ""
	}
	escaped := escapeKey(key)
	switch {
	case c.cfg.PublicBase != "":
		return strings.TrimRight(c.cfg.PublicBase, "/") + "/" + container + "/" + escaped
	case c.cfg.Endpoint != "":
		return c.cfg.Endpoint + "/" + container + "/" + escaped
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", container, c.cfg.Region, escaped)
	}
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
