package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/miy4x/shigezane-admin/internal/client/client"
	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/client/query"
	"github.com/miy4x/shigezane-admin/internal/client/upload"
)

var errBackend = errors.New("backend says no")

// journal records calls across fakes so tests can assert ordering.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(format string, args ...any) {
	j.mu.Lock()
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
	j.mu.Unlock()
}

func (j *journal) all() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

type fakeStore[T Record, I any] struct {
	mu   sync.Mutex
	j    *journal
	kind models.Kind

	items    []T
	getAll   int
	created  []I
	updated  []I
	patches  []map[string]any
	deleted  []int64
	writeErr error
	// nullData makes writes answer with an empty record.
	nullData bool
	build    func(id int64, in I) T
}

func newFakeStore[T Record, I any](j *journal, kind models.Kind, mk func(id int64, in I) T, items ...T) *fakeStore[T, I] {
	return &fakeStore[T, I]{j: j, kind: kind, build: mk, items: items}
}

func (s *fakeStore[T, I]) GetAll(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getAll++
	s.j.add("%s:list", s.kind)
	return append([]T(nil), s.items...), nil
}

func (s *fakeStore[T, I]) GetByID(ctx context.Context, id int64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID() == id {
			return it, nil
		}
	}
	var zero T
	return zero, &client.RequestError{Kind: client.ErrorResponse, StatusCode: 404, Message: "not found"}
}

func (s *fakeStore[T, I]) Create(ctx context.Context, in I) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.j.add("%s:create", s.kind)
	if s.writeErr != nil {
		var zero T
		return zero, s.writeErr
	}
	s.created = append(s.created, in)
	rec := s.build(int64(100+len(s.created)), in)
	s.items = append(s.items, rec)
	return rec, nil
}

func (s *fakeStore[T, I]) Update(ctx context.Context, id int64, in I, fields ...string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.j.add("%s:update:%d", s.kind, id)
	if s.writeErr != nil {
		var zero T
		return zero, s.writeErr
	}
	s.updated = append(s.updated, in)
	if s.nullData {
		var zero T
		return zero, nil
	}
	return s.build(id, in), nil
}

func (s *fakeStore[T, I]) Patch(ctx context.Context, id int64, fields map[string]any) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.j.add("%s:patch:%d", s.kind, id)
	var zero T
	if s.writeErr != nil {
		return zero, s.writeErr
	}
	s.patches = append(s.patches, fields)
	return zero, nil
}

func (s *fakeStore[T, I]) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.j.add("%s:delete:%d", s.kind, id)
	if s.writeErr != nil {
		return s.writeErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeStore[T, I]) listCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getAll
}

// fakeUploader hands out sequential durable URLs. Files whose name is in
// fail are rejected.
type fakeUploader struct {
	mu        sync.Mutex
	j         *journal
	n         int
	fail      map[string]bool
	deleted   []string
	deleteErr error
}

func (u *fakeUploader) next() string {
	u.n++
	return fmt.Sprintf("https://acct.blob.core.windows.net/images/up-%d.jpg", u.n)
}

func (u *fakeUploader) UploadForRole(ctx context.Context, f upload.File, role models.ImageRole) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.j.add("upload:%s", role)
	if u.fail[f.Name] {
		return "", &upload.StorageError{Stage: upload.Uploading, Err: errBackend}
	}
	return u.next(), nil
}

func (u *fakeUploader) UploadGallery(ctx context.Context, fields []models.ImageField, files []upload.File) upload.GalleryResult {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.j.add("upload:gallery:%d", len(files))
	res := upload.GalleryResult{URLs: make([]string, len(files)), Errors: make([]error, len(files))}
	for i, f := range files {
		if u.fail[f.Name] {
			res.Errors[i] = &upload.StorageError{Stage: upload.Uploading, Err: errBackend}
			res.Failed++
			continue
		}
		res.URLs[i] = u.next()
		res.Succeeded++
	}
	return res
}

func (u *fakeUploader) DeleteImage(ctx context.Context, imageURL string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.j.add("delete-image:%s", imageURL)
	u.deleted = append(u.deleted, imageURL)
	return u.deleteErr
}

func newTestCache() *query.Cache {
	return query.New(query.Options{RetryDelay: time.Millisecond}, nil)
}

func jpegFile(name string) upload.File {
	return upload.File{Name: name, ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff, 0xe0}}
}

func isPlaceholder(u string) bool { return strings.HasPrefix(u, models.LocalPreviewScheme) }

type fixture struct {
	j        *journal
	cache    *query.Cache
	uploader *fakeUploader

	rentals   *fakeStore[models.RentalUnit, models.RentalUnitInput]
	weeklies  *fakeStore[models.WeeklyUnit, models.WeeklyUnitInput]
	lands     *fakeStore[models.LandProperty, models.LandPropertyInput]
	houses    *fakeStore[models.HouseProperty, models.HousePropertyInput]
	spaces    *fakeStore[models.ParkingSpace, models.ParkingSpaceInput]
	buildings *fakeStore[models.Building, models.BuildingInput]
	lots      *fakeStore[models.ParkingLot, models.ParkingLotInput]

	reg *Registry
}

func newFixture() *fixture {
	j := &journal{}
	f := &fixture{j: j, cache: newTestCache(), uploader: &fakeUploader{j: j, fail: map[string]bool{}}}

	f.rentals = newFakeStore(j, models.KindRental, func(id int64, in models.RentalUnitInput) models.RentalUnit {
		return models.RentalUnit{UnitID: id, BuildingID: in.BuildingID, UnitNumber: in.UnitNumber, Status: in.Status, Images: in.Images}
	},
		models.RentalUnit{UnitID: 1, BuildingID: 1, UnitNumber: "101", MonthlyRent: 60000, Status: models.StatusRecruiting},
		models.RentalUnit{UnitID: 2, BuildingID: 1, UnitNumber: "102", MonthlyRent: 90000, Status: models.StatusOccupied},
		models.RentalUnit{UnitID: 3, BuildingID: 2, UnitNumber: "201", MonthlyRent: 75000, Status: models.StatusRecruiting},
	)
	f.weeklies = newFakeStore(j, models.KindWeekly, func(id int64, in models.WeeklyUnitInput) models.WeeklyUnit {
		return models.WeeklyUnit{WeeklyUnitID: id}
	},
		models.WeeklyUnit{WeeklyUnitID: 1, Status: models.StatusPreparing},
	)
	f.lands = newFakeStore(j, models.KindLand, func(id int64, in models.LandPropertyInput) models.LandProperty {
		return models.LandProperty{LandID: id}
	},
		models.LandProperty{LandID: 1, Status: models.StatusContracted},
		models.LandProperty{LandID: 2, Status: models.StatusRecruiting},
	)
	f.houses = newFakeStore(j, models.KindHouse, func(id int64, in models.HousePropertyInput) models.HouseProperty {
		return models.HouseProperty{HouseID: id}
	})
	f.spaces = newFakeStore(j, models.KindParking, func(id int64, in models.ParkingSpaceInput) models.ParkingSpace {
		return models.ParkingSpace{ParkingSpaceID: id}
	},
		models.ParkingSpace{ParkingSpaceID: 1, Status: models.StatusUnderContract},
		models.ParkingSpace{ParkingSpaceID: 2, Status: models.StatusUnderContract},
		models.ParkingSpace{ParkingSpaceID: 3, Status: models.StatusRecruiting},
	)
	f.buildings = newFakeStore(j, models.KindBuilding, func(id int64, in models.BuildingInput) models.Building {
		return models.Building{BuildingID: id, Name: in.Name}
	},
		models.Building{BuildingID: 1, Name: "シゲザネハイツ"},
	)
	f.lots = newFakeStore(j, models.KindParkingLot, func(id int64, in models.ParkingLotInput) models.ParkingLot {
		return models.ParkingLot{ParkingLotID: id, Name: in.Name}
	})

	f.reg = &Registry{
		Rentals: NewEntityService[models.RentalUnit, models.RentalUnitInput](models.KindRental, f.rentals, f.cache, f.uploader, nil,
			func(r models.RentalUnit) models.Status { return r.Status }),
		Weeklies: NewEntityService[models.WeeklyUnit, models.WeeklyUnitInput](models.KindWeekly, f.weeklies, f.cache, f.uploader, nil,
			func(r models.WeeklyUnit) models.Status { return r.Status }),
		Lands: NewEntityService[models.LandProperty, models.LandPropertyInput](models.KindLand, f.lands, f.cache, f.uploader, nil,
			func(r models.LandProperty) models.Status { return r.Status }),
		Houses: NewEntityService[models.HouseProperty, models.HousePropertyInput](models.KindHouse, f.houses, f.cache, f.uploader, nil,
			func(r models.HouseProperty) models.Status { return r.Status }),
		ParkingSpaces: NewEntityService[models.ParkingSpace, models.ParkingSpaceInput](models.KindParking, f.spaces, f.cache, f.uploader, nil,
			func(r models.ParkingSpace) models.Status { return r.Status }),
		Buildings:   NewEntityService[models.Building, models.BuildingInput](models.KindBuilding, f.buildings, f.cache, f.uploader, nil, nil),
		ParkingLots: NewEntityService[models.ParkingLot, models.ParkingLotInput](models.KindParkingLot, f.lots, f.cache, f.uploader, nil, nil),
	}
	return f
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
