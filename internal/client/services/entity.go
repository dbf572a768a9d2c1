package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/miy4x/shigezane-admin/internal/client/filters"
	"github.com/miy4x/shigezane-admin/internal/client/forms"
	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/client/query"
	"github.com/miy4x/shigezane-admin/internal/client/upload"
	"github.com/miy4x/shigezane-admin/internal/logging"
)

// Record is implemented by every fetched entity.
type Record interface {
	ID() int64
}

// Store is the backend resource of one kind. *client.Resource implements it.
type Store[T any, I any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, in I) (T, error)
	Update(ctx context.Context, id int64, in I, fields ...string) (T, error)
	Patch(ctx context.Context, id int64, fields map[string]any) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Uploader stores picked images. *upload.Pipeline implements it.
type Uploader interface {
	UploadForRole(ctx context.Context, f upload.File, role models.ImageRole) (string, error)
	UploadGallery(ctx context.Context, fields []models.ImageField, files []upload.File) upload.GalleryResult
	DeleteImage(ctx context.Context, imageURL string) error
}

// Listing is a filtered view of one kind.
type Listing struct {
	Kind    models.Kind
	Records any
	Total   int
	Shown   int
}

// Entity is the kind-agnostic face of an EntityService used by menus,
// the dashboard and export.
type Entity interface {
	Kind() models.Kind
	Listing(ctx context.Context, c filters.Criteria) (Listing, error)
	Record(ctx context.Context, id int64) (any, error)
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, status models.Status) error
	StatusCounts(ctx context.Context) (map[models.Status]int, int, error)
}

// EntityService reads and writes records of one kind through the query
// cache. Writes invalidate the kind and every kind that embeds it.
type EntityService[T Record, I any] struct {
	kind     models.Kind
	store    Store[T, I]
	cache    *query.Cache
	uploader Uploader
	logger   logging.Logger
	statusOf func(T) models.Status
}

func NewEntityService[T Record, I any](kind models.Kind, store Store[T, I], cache *query.Cache, uploader Uploader, logger logging.Logger, statusOf func(T) models.Status) *EntityService[T, I] {
	if logger == nil {
		logger = logging.Discard()
	}
	return &EntityService[T, I]{
		kind:     kind,
		store:    store,
		cache:    cache,
		uploader: uploader,
		logger:   logger.With("kind", string(kind)),
		statusOf: statusOf,
	}
}

func (s *EntityService[T, I]) Kind() models.Kind { return s.kind }

func (s *EntityService[T, I]) invalidates() []models.Kind {
	return append([]models.Kind{s.kind}, s.kind.Dependents()...)
}

// List returns the whole collection as the backend orders it.
func (s *EntityService[T, I]) List(ctx context.Context) ([]T, error) {
	return query.Query(ctx, s.cache, query.ListKey(s.kind), s.store.GetAll)
}

// Search narrows the collection by c. Each distinct filter is cached
// under its own key and dropped together with the collection.
func (s *EntityService[T, I]) Search(ctx context.Context, c filters.Criteria) ([]T, error) {
	if c.IsZero() {
		all, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		return filters.Apply(all, c), nil
	}
	return query.Query(ctx, s.cache, query.FilteredKey(s.kind, c.Key()), func(ctx context.Context) ([]T, error) {
		all, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		return filters.Apply(all, c), nil
	})
}

func (s *EntityService[T, I]) Get(ctx context.Context, id int64) (T, error) {
	return query.Query(ctx, s.cache, query.ItemKey(s.kind, id), func(ctx context.Context) (T, error) {
		return s.store.GetByID(ctx, id)
	})
}

func (s *EntityService[T, I]) Listing(ctx context.Context, c filters.Criteria) (Listing, error) {
	all, err := s.List(ctx)
	if err != nil {
		return Listing{}, err
	}
	shown, err := s.Search(ctx, c)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Kind: s.kind, Records: shown, Total: len(all), Shown: len(shown)}, nil
}

func (s *EntityService[T, I]) Record(ctx context.Context, id int64) (any, error) {
	return s.Get(ctx, id)
}

// Submit saves form: it validates, uploads every pending image, checks
// that no placeholder is left, sends the create or update and, once that
// succeeded, deletes the images the form replaced. Nothing is sent to the
// backend when any earlier step fails.
func (s *EntityService[T, I]) Submit(ctx context.Context, form *forms.Form[I]) (T, error) {
	var zero T

	if err := form.Validate(); err != nil {
		return zero, err
	}
	if err := s.uploadPending(ctx, form); err != nil {
		return zero, err
	}
	if err := forms.EnsureDurable(form.Images()); err != nil {
		return zero, err
	}

	payload := form.Payload()
	isEdit := form.IsEdit()
	rec, err := query.Mutate(ctx, s.cache, s.invalidates(), func(ctx context.Context) (T, error) {
		if isEdit {
			return s.store.Update(ctx, form.ID, payload)
		}
		return s.store.Create(ctx, payload)
	})
	if err != nil {
		return zero, err
	}

	for _, u := range form.Replaced() {
		if err := s.uploader.DeleteImage(ctx, u); err != nil {
			s.logger.Warn(ctx, "failed to delete replaced image", "url", u, "error", err)
		}
	}
	id := rec.ID()
	if isEdit && id == 0 {
		id = form.ID
	}
	form.Saved(id)
	s.logger.Info(ctx, "record saved", "id", id, "edit", isEdit)
	return rec, nil
}

// uploadPending uploads single-role images one by one and the gallery in
// parallel. Uploaded URLs are written into the form even when a later
// upload fails, so a retry only re-sends what is still pending.
func (s *EntityService[T, I]) uploadPending(ctx context.Context, form *forms.Form[I]) error {
	var (
		galleryFields []models.ImageField
		galleryFiles  []upload.File
	)
	for _, p := range form.Pending() {
		if p.Field.Role == models.RoleGallery {
			galleryFields = append(galleryFields, p.Field)
			galleryFiles = append(galleryFiles, p.File)
			continue
		}
		url, err := s.uploader.UploadForRole(ctx, p.File, p.Field.Role)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Field, err)
		}
		form.Resolve(p.Field, url)
	}

	if len(galleryFiles) == 0 {
		return nil
	}
	res := s.uploader.UploadGallery(ctx, galleryFields, galleryFiles)
	for i, url := range res.URLs {
		if res.Errors[i] == nil {
			form.Resolve(galleryFields[i], url)
		}
	}
	return res.Err()
}

func (s *EntityService[T, I]) Delete(ctx context.Context, id int64) error {
	err := query.MutateErr(ctx, s.cache, s.invalidates(), func(ctx context.Context) error {
		return s.store.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "record deleted", "id", id)
	return nil
}

// ErrNoStatus is returned by SetStatus for master kinds.
var ErrNoStatus = errors.New("records of this kind have no status")

// SetStatus changes only the status field of one record.
func (s *EntityService[T, I]) SetStatus(ctx context.Context, id int64, status models.Status) error {
	allowed := models.Statuses(s.kind)
	if len(allowed) == 0 {
		return ErrNoStatus
	}
	ok := false
	for _, st := range allowed {
		ok = ok || st == status
	}
	if !ok {
		return fmt.Errorf("%q is not a %s status", status, s.kind)
	}
	_, err := query.Mutate(ctx, s.cache, s.invalidates(), func(ctx context.Context) (T, error) {
		return s.store.Patch(ctx, id, map[string]any{"status": status})
	})
	return err
}

// StatusCounts returns how many records are in each status, and the total.
func (s *EntityService[T, I]) StatusCounts(ctx context.Context) (map[models.Status]int, int, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	counts := map[models.Status]int{}
	if s.statusOf != nil {
		for _, r := range all {
			counts[s.statusOf(r)]++
		}
	}
	return counts, len(all), nil
}
