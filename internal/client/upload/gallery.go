package upload

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

// GalleryResult maps gallery uploads back to selection order. URLs[i] is
// empty when Errors[i] is set.
type GalleryResult struct {
	URLs      []string
	Errors    []error
	Succeeded int
	Failed    int
}

// Err summarises partial failure, or returns nil when every upload succeeded.
func (r GalleryResult) Err() error {
	if r.Failed == 0 {
		return nil
	}
	return &GalleryError{Succeeded: r.Succeeded, Failed: r.Failed, First: r.firstErr()}
}

func (r GalleryResult) firstErr() error {
	for _, err := range r.Errors {
		if err != nil {
			return err
		}
	}
	return nil
}

// GalleryError reports a partially failed gallery upload. Successful
// uploads are kept.
type GalleryError struct {
	Succeeded int
	Failed    int
	First     error
}

func (e *GalleryError) Error() string {
	return fmt.Sprintf("gallery upload: %d succeeded, %d failed: %v", e.Succeeded, e.Failed, e.First)
}

func (e *GalleryError) Unwrap() error { return e.First }

// UploadGallery uploads files concurrently. fields[i] names the gallery
// slot of files[i]; one failure does not stop the others.
func (p *Pipeline) UploadGallery(ctx context.Context, fields []models.ImageField, files []File) GalleryResult {
	res := GalleryResult{
		URLs:   make([]string, len(files)),
		Errors: make([]error, len(files)),
	}

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i := range files {
		field := models.ImageField{Role: models.RoleGallery, Index: i}
		if i < len(fields) {
			field = fields[i]
		}
		g.Go(func() error {
			t := NewTask(field, files[i])
			if err := p.Run(ctx, t); err != nil {
				res.Errors[i] = err
				return nil
			}
			res.URLs[i] = t.URL
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range res.Errors {
		if err != nil {
			res.Failed++
		} else {
			res.Succeeded++
		}
	}
	return res
}
