package upload

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

// putAzureBlob writes data to the SAS-authorised blob URL and returns the
// client's view of the blob URL.
var putAzureBlob = func(ctx context.Context, blobURL string, data []byte, contentType string) (string, error) {
	client, err := blockblob.NewClientWithNoCredential(blobURL, nil)
	if err != nil {
		return "", err
	}
	_, err = client.UploadBuffer(ctx, data, &blockblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)},
	})
	if err != nil {
		return "", err
	}
	return client.URL(), nil
}

// AzureWriter writes block blobs with a container-scoped SAS token.
type AzureWriter struct{}

func (AzureWriter) Write(ctx context.Context, cred models.UploadCredential, name string, f File) (string, error) {
	if cred.ContainerName == "" || cred.SAS() == "" || (cred.AccountName == "" && cred.Endpoint == "") {
		return "", ErrCredential
	}

	endpoint := strings.TrimRight(cred.Endpoint, "/")
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.blob.core.windows.net", cred.AccountName)
	}
	blobURL := fmt.Sprintf("%s/%s/%s?%s", endpoint, url.PathEscape(cred.ContainerName), url.PathEscape(name), cred.SAS())

	return putAzureBlob(ctx, blobURL, f.Data, f.ContentType)
}
