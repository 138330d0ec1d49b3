package storage

import (
	"context"
	"fmt"
	"strings"

	intake_errors "form-intake/pkg/errors"
)

// ObjectStore writes a byte buffer under key inside container and returns its URL.
// An existing object at the same key is overwritten.
type ObjectStore interface {
	Upload(ctx context.Context, container, key string, data []byte, contentType string) (string, error)
}

// Open picks a backend from a storage connection string.
//
//	AccountName=...;AccountKey=...;EndpointSuffix=...          Azure Blob Storage
//	Provider=s3;Region=...;AccessKey=...;SecretKey=...;Endpoint=...;PublicBase=...
func Open(ctx context.Context, connectionString string) (ObjectStore, error) {
	fields := ParseConnectionString(connectionString)
	switch {
	case fields["accountname"] != "" || fields["blobendpoint"] != "":
		return NewAzureBlobStore(connectionString, nil)
	case strings.EqualFold(fields["provider"], "s3"):
		return NewS3Store(ctx, S3Config{
			Region:     fields["region"],
			AccessKey:  fields["accesskey"],
			SecretKey:  fields["secretkey"],
			Endpoint:   fields["endpoint"],
			PublicBase: fields["publicbase"],
		})
	default:
		return nil, fmt.Errorf("%w: storage connection string names no known provider", intake_errors.ErrUnsupportedBackend)
	}
}

// ParseConnectionString splits "Key=Value;Key=Value" pairs. Keys are lower-cased;
// values keep everything after the first '=' (account keys end in '=').
func ParseConnectionString(s string) map[string]string {
	fields := make(map[string]string)
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		fields[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return fields
}
