package storage

import (
	"context"
	"errors"
	"fmt"

	intake_errors "form-intake/pkg/errors"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
)

// AzureBlobStore uploads block blobs into a storage account container.
type AzureBlobStore struct {
	client *azblob.Client
}

// NewAzureBlobStore builds a client from an account connection string. opts may be nil.
func NewAzureBlobStore(connectionString string, opts *azblob.ClientOptions) (*AzureBlobStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, opts)
	if err != nil {
		return nil, fmt.Errorf("azure blob client: %w", err)
	}
	return &AzureBlobStore{client: client}, nil
}

func (a *AzureBlobStore) Upload(ctx context.Context, container, key string, data []byte, contentType string) (string, error) {
	if a == nil || a.client == nil {
		return "", errors.New("azure blob client not initialized")
	}
	if container == "" || key == "" {
		return "", fmt.Errorf("%w: container and blob name are required", intake_errors.ErrUploadFailed)
	}

	blockBlob := a.client.ServiceClient().NewContainerClient(container).NewBlockBlobClient(key)

	var opts *blockblob.UploadBufferOptions
	if contentType != "" {
		opts = &blockblob.UploadBufferOptions{
			HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
		}
	}
	// Block blob uploads replace any existing blob with the same name.
	if _, err := blockBlob.UploadBuffer(ctx, data, opts); err != nil {
		return "", fmt.Errorf("%w: %w", intake_errors.ErrUploadFailed, err)
	}
	return blockBlob.URL(), nil
}
