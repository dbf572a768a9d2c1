package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miy4x/shigezane-admin/internal/client/filters"
	"github.com/miy4x/shigezane-admin/internal/client/forms"
	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/client/upload"
)

const (
	oldMain  = "https://acct.blob.core.windows.net/images/old-main.jpg"
	oldFloor = "https://acct.blob.core.windows.net/images/old-floor.jpg"
)

func rentalInput() models.RentalUnitInput {
	in := forms.DefaultRentalInput()
	in.BuildingID = 1
	in.UnitNumber = "301"
	in.RoomLayout = "1LDK"
	in.Area = 40
	in.MonthlyRent = 85000
	in.Status = models.StatusRecruiting
	return in
}

func TestSubmit_CreateRentalUploadsThenCreatesThenInvalidates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	svc := f.reg.Rentals

	_, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, f.rentals.listCalls())

	form := forms.NewCreateForm(models.KindRental, rentalInput())
	require.NoError(t, form.AttachImage(models.ImageField{Role: models.RoleMain}, "/p/main.jpg", jpegFile("main.jpg")))
	require.NoError(t, form.AttachImage(models.ImageField{Role: models.RoleFloorplan}, "/p/floor.jpg", jpegFile("floor.jpg")))
	require.NoError(t, form.AttachImage(models.ImageField{Role: models.RoleGallery}, "/p/g0.jpg", jpegFile("g0.jpg")))
	require.NoError(t, form.AttachImage(models.ImageField{Role: models.RoleGallery, Index: 1}, "/p/g1.jpg", jpegFile("g1.jpg")))

	rec, err := svc.Submit(ctx, form)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"rental:list",
		"upload:main",
		"upload:floorplan",
		"upload:gallery:2",
		"rental:create",
	}, f.j.all())

	require.Len(t, f.rentals.created, 1)
	sent := f.rentals.created[0].Images
	for _, u := range sent.URLs() {
		assert.False(t, isPlaceholder(u), u)
	}
	assert.Len(t, sent.Gallery, 2)
	assert.Equal(t, rec.UnitID, form.ID)
	assert.Empty(t, form.Pending())
	assert.Empty(t, f.uploader.deleted)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.rentals.listCalls(), "rental collection must be refetched after create")
}

func TestSubmit_InvalidFormSendsNothing(t *testing.T) {
	f := newFixture()
	in := rentalInput()
	in.UnitNumber = ""
	form := forms.NewCreateForm(models.KindRental, in)
	require.NoError(t, form.AttachImage(models.ImageField{Role: models.RoleMain}, "/p/main.jpg", jpegFile("main.jpg")))

	_, err := f.reg.Rentals.Submit(context.Background(), form)

	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "unit_number")
	assert.Empty(t, f.j.all())
}

func TestSubmit_UploadFailureStopsBeforeMutation(t *testing.T) {
	f := newFixture()
	f.uploader.fail["floor.jpg"] = true
	form := forms.NewCreateForm(models.KindRental, rentalInput())
	require.NoError(t, form.AttachImage(models.ImageField{Role: models.RoleMain}, "/p/main.jpg", jpegFile("main.jpg")))
	require.NoError(t, form.AttachImage(models.ImageField{Role: models.RoleFloorplan}, "/p/floor.jpg", jpegFile("floor.jpg")))

	_, err := f.reg.Rentals.Submit(context.Background(), form)

	var serr *upload.StorageError
	require.ErrorAs(t, err, &serr)
	assert.ErrorContains(t, err, "floorplan")
	assert.Empty(t, f.rentals.created)
	assert.False(t, isPlaceholder(form.Values.Images.Main), "successful upload is kept for the retry")
	assert.True(t, isPlaceholder(form.Values.Images.Floorplan))
	require.Len(t, form.Pending(), 1)

	delete(f.uploader.fail, "floor.jpg")
	_, err = f.reg.Rentals.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Len(t, f.rentals.created, 1)
}

func TestSubmit_GalleryPartialFailureReportsCounts(t *testing.T) {
	f := newFixture()
	f.uploader.fail["g1.jpg"] = true
	in := rentalInput()
	in.Images = models.ImageSet{Main: oldMain, Floorplan: oldFloor}
	form := forms.NewCreateForm(models.KindRental, in)
	for i, name := range []string{"g0.jpg", "g1.jpg"} {
		require.NoError(t, form.AttachImage(models.ImageField{Role: models.RoleGallery, Index: i}, "/p/"+name, jpegFile(name)))
	}

	_, err := f.reg.Rentals.Submit(context.Background(), form)

	var gerr *upload.GalleryError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, 1, gerr.Succeeded)
	assert.Equal(t, 1, gerr.Failed)
	assert.Empty(t, f.rentals.created)
	assert.False(t, isPlaceholder(form.Values.Images.Gallery[0]))
	assert.True(t, isPlaceholder(form.Values.Images.Gallery[1]))
}

func TestSubmit_EditDeletesReplacedImageAfterUpdate(t *testing.T) {
	f := newFixture()
	f.uploader.deleteErr = errBackend
	in := rentalInput()
	in.Images = models.ImageSet{Main: oldMain, Floorplan: oldFloor}
	form := forms.NewEditForm(models.KindRental, 2, in)
	require.NoError(t, form.AttachImage(models.ImageField{Role: models.RoleMain}, "/p/new.jpg", jpegFile("new.jpg")))

	_, err := f.reg.Rentals.Submit(context.Background(), form)
	require.NoError(t, err, "a failed image delete does not fail the edit")

	assert.Equal(t, []string{
		"upload:main",
		"rental:update:2",
		"delete-image:" + oldMain,
	}, f.j.all())
	require.Len(t, f.rentals.updated, 1)
	assert.Equal(t, oldFloor, f.rentals.updated[0].Images.Floorplan)
	assert.Empty(t, form.Replaced())
}

func TestSubmit_EditWithEmptyResponseKeepsID(t *testing.T) {
	f := newFixture()
	f.rentals.nullData = true
	in := rentalInput()
	in.Images = models.ImageSet{Main: oldMain, Floorplan: oldFloor}
	form := forms.NewEditForm(models.KindRental, 2, in)

	_, err := f.reg.Rentals.Submit(context.Background(), form)

	require.NoError(t, err)
	assert.Equal(t, int64(2), form.ID)
	assert.True(t, form.IsEdit())
}

func TestSubmit_BarePlaceholderRejectedBeforeAnyCall(t *testing.T) {
	f := newFixture()
	in := rentalInput()
	in.Images = models.ImageSet{Main: models.LocalPreview("/p/main.jpg"), Floorplan: oldFloor}
	form := forms.NewCreateForm(models.KindRental, in)

	_, err := f.reg.Rentals.Submit(context.Background(), form)

	require.ErrorIs(t, err, forms.ErrPendingUpload)
	assert.ErrorContains(t, err, "main")
	assert.Empty(t, f.j.all())
	assert.Empty(t, f.rentals.created)
}

func TestSubmit_FailedUpdateKeepsOldImagesAndCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.reg.Rentals.List(ctx)
	require.NoError(t, err)

	f.rentals.writeErr = errBackend
	in := rentalInput()
	in.Images = models.ImageSet{Main: oldMain, Floorplan: oldFloor}
	form := forms.NewEditForm(models.KindRental, 2, in)
	form.RemoveImage(models.ImageField{Role: models.RoleFloorplan})
	require.NoError(t, form.AttachImage(models.ImageField{Role: models.RoleFloorplan}, "/p/f.jpg", jpegFile("f.jpg")))

	_, err = f.reg.Rentals.Submit(ctx, form)
	require.ErrorIs(t, err, errBackend)

	assert.Empty(t, f.uploader.deleted)
	assert.Equal(t, []string{oldFloor}, form.Replaced())
	_, err = f.reg.Rentals.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.rentals.listCalls())
}

func TestDelete_FailureLeavesCacheUntouched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.reg.Rentals.List(ctx)
	require.NoError(t, err)

	f.rentals.writeErr = errBackend
	require.ErrorIs(t, f.reg.Rentals.Delete(ctx, 1), errBackend)
	_, err = f.reg.Rentals.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.rentals.listCalls())

	f.rentals.writeErr = nil
	require.NoError(t, f.reg.Rentals.Delete(ctx, 1))
	_, err = f.reg.Rentals.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.rentals.listCalls())
}

func TestBuildingWriteInvalidatesUnits(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.reg.Rentals.List(ctx)
	require.NoError(t, err)
	_, err = f.reg.ParkingSpaces.List(ctx)
	require.NoError(t, err)

	form := forms.NewEditForm(models.KindBuilding, 1, models.BuildingInput{
		Name: "シゲザネハイツ東", Address: "札幌市", Structure: models.StructureRC, TotalFloors: 5,
	})
	_, err = f.reg.Buildings.Submit(ctx, form)
	require.NoError(t, err)

	_, err = f.reg.Rentals.List(ctx)
	require.NoError(t, err)
	_, err = f.reg.ParkingSpaces.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.rentals.listCalls())
	assert.Equal(t, 1, f.spaces.listCalls(), "parking spaces do not embed buildings")
}

func TestSetStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.reg.Rentals.SetStatus(ctx, 3, models.StatusOccupied))
	require.Len(t, f.rentals.patches, 1)
	assert.Equal(t, map[string]any{"status": models.StatusOccupied}, f.rentals.patches[0])

	assert.Error(t, f.reg.Rentals.SetStatus(ctx, 3, models.StatusContracted))
	assert.ErrorIs(t, f.reg.Buildings.SetStatus(ctx, 1, models.StatusRecruiting), ErrNoStatus)
	assert.Len(t, f.rentals.patches, 1)
}

func TestSearch_CachesFilteredView(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := filters.Criteria{Status: models.StatusRecruiting, Sort: filters.SortPriceAsc}

	first, err := f.reg.Rentals.Search(ctx, c)
	require.NoError(t, err)
	second, err := f.reg.Rentals.Search(ctx, c)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, []int64{1, 3}, []int64{first[0].UnitID, first[1].UnitID})
	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.rentals.listCalls())

	l, err := f.reg.Rentals.Listing(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 3, l.Total)
	assert.Equal(t, 2, l.Shown)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.reg.Rentals.Get(context.Background(), 99)
	assert.Error(t, err)

	rec, err := f.reg.Rentals.Record(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.(models.RentalUnit).UnitID)
}

func TestRegistry_Entity(t *testing.T) {
	f := newFixture()
	for _, k := range models.AllKinds() {
		e, err := f.reg.Entity(k)
		require.NoError(t, err)
		assert.Equal(t, k, e.Kind())
	}
	_, err := f.reg.Entity("garage")
	assert.Error(t, err)
}
