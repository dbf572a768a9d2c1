package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

func pngFile(t *testing.T, w, h int) File {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return File{Name: "plan.png", ContentType: "image/png", Data: buf.Bytes()}
}

func jpegFile(t *testing.T, w, h int) File {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	return File{Name: "room.jpg", ContentType: "image/jpeg", Data: buf.Bytes()}
}

type fakeCredentials struct {
	mu    sync.Mutex
	calls int
	cred  models.UploadCredential
	err   error
}

func (f *fakeCredentials) UploadCredential(ctx context.Context) (models.UploadCredential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.cred, f.err
}

type fakeRemover struct {
	deleted []string
	err     error
}

func (f *fakeRemover) DeleteImage(ctx context.Context, u string) error {
	f.deleted = append(f.deleted, u)
	return f.err
}

// fakeWriter returns a SAS-style URL for the object and can fail for
// chosen file names.
type fakeWriter struct {
	mu      sync.Mutex
	written []File
	names   []string
	failFor map[string]bool
}

func (f *fakeWriter) Write(ctx context.Context, cred models.UploadCredential, name string, file File) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[file.Name] {
		return "", errors.New("storage rejected write")
	}
	f.written = append(f.written, file)
	f.names = append(f.names, name)
	return "https://acct.blob.core.windows.net/images/" + name + "?sv=2024&sig=SECRET", nil
}

type failingCompressor struct{ panics bool }

func (f failingCompressor) Compress(ctx context.Context, file File, b Budget) (File, error) {
	if f.panics {
		panic("decoder exploded")
	}
	return File{}, errors.New("unsupported colour model")
}

type passthroughCompressor struct{}

func (passthroughCompressor) Compress(ctx context.Context, file File, b Budget) (File, error) {
	return file, nil
}

func azureCred() models.UploadCredential {
	return models.UploadCredential{
		Token:         "sv=2024&sig=SECRET",
		AccountName:   "acct",
		ContainerName: "images",
		ExpiresOn:     "2099-01-01T00:00:00Z",
	}
}
