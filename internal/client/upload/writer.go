package upload

import (
	"context"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

const (
	ProviderAzure = "azure"
	ProviderS3    = "s3"
)

// BlobWriter stores data under name using cred and returns the object URL.
// The URL may still carry credential query parameters; the pipeline strips
// them.
type BlobWriter interface {
	Write(ctx context.Context, cred models.UploadCredential, name string, f File) (string, error)
}

// CredentialSource issues single-use write credentials.
type CredentialSource interface {
	UploadCredential(ctx context.Context) (models.UploadCredential, error)
}

// ImageRemover deletes a stored image by its public URL.
type ImageRemover interface {
	DeleteImage(ctx context.Context, imageURL string) error
}

func providerOf(cred models.UploadCredential) string {
	if cred.Provider == "" {
		return ProviderAzure
	}
	return cred.Provider
}
