package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPreview(t *testing.T) {
	p := LocalPreview("/tmp/photo.jpg")

	assert.True(t, IsLocalPreview(p))
	assert.False(t, IsDurableURL(p))

	path, ok := LocalPreviewPath(p)
	require.True(t, ok)
	assert.Equal(t, "/tmp/photo.jpg", path)

	_, ok = LocalPreviewPath("https://acct.blob.core.windows.net/c/x.jpg")
	assert.False(t, ok)
}

func TestIsDurableURL(t *testing.T) {
	assert.True(t, IsDurableURL("https://acct.blob.core.windows.net/images/a.jpg"))
	assert.True(t, IsDurableURL("http://localhost:9000/bucket/a.jpg"))
	assert.False(t, IsDurableURL("/relative/a.jpg"))
	assert.False(t, IsDurableURL("ftp://host/a.jpg"))
	assert.False(t, IsDurableURL(""))
}

func TestImageField_RoundTrip(t *testing.T) {
	for _, s := range []string{"main", "floorplan", "survey", "layout", "gallery[0]", "gallery[9]"} {
		f, err := ParseImageField(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, f.String())
	}

	for _, s := range []string{"thumbnail", "gallery[x]", "gallery[-1]", "gallery[2"} {
		_, err := ParseImageField(s)
		assert.Error(t, err, s)
	}
}

func TestImageSet_SetGetFields(t *testing.T) {
	var s ImageSet
	s.Set(ImageField{Role: RoleMain}, "https://h/main.jpg")
	s.Set(ImageField{Role: RoleFloorplan}, "https://h/fp.jpg")
	s.Set(ImageField{Role: RoleGallery, Index: 0}, "https://h/g0.jpg")
	s.Set(ImageField{Role: RoleGallery, Index: 1}, "https://h/g1.jpg")
	s.Set(ImageField{Role: RoleGallery, Index: 5}, "https://h/ignored.jpg")

	assert.Equal(t, "https://h/main.jpg", s.Get(ImageField{Role: RoleMain}))
	assert.Equal(t, []string{"https://h/g0.jpg", "https://h/g1.jpg"}, s.Gallery)
	assert.Equal(t,
		[]string{"main", "floorplan", "gallery[0]", "gallery[1]"},
		fieldNames(s.Fields()))

	s.Set(ImageField{Role: RoleGallery, Index: 0}, "")
	assert.Equal(t, []string{"https://h/g1.jpg"}, s.Gallery)
	assert.Equal(t, "", s.Get(ImageField{Role: RoleGallery, Index: 3}))
}

func TestImageSet_CloneIsDeep(t *testing.T) {
	s := ImageSet{Main: "https://h/m.jpg", Gallery: []string{"https://h/a.jpg"}}
	c := s.Clone()
	c.Gallery[0] = "https://h/b.jpg"

	assert.Equal(t, "https://h/a.jpg", s.Gallery[0])
}

func fieldNames(fs []ImageField) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}

func TestKind_Helpers(t *testing.T) {
	k, err := ParseKind("Rental-Units")
	require.NoError(t, err)
	assert.Equal(t, KindRental, k)

	_, err = ParseKind("castle")
	assert.Error(t, err)

	role, ok := KindLand.RequiredImage()
	assert.True(t, ok)
	assert.Equal(t, RoleSurvey, role)

	_, ok = KindParking.RequiredImage()
	assert.False(t, ok)

	assert.ElementsMatch(t, []Kind{KindRental, KindWeekly}, KindBuilding.Dependents())
	assert.Len(t, AllKinds(), 7)
	assert.False(t, KindBuilding.HasImages())
	assert.Equal(t, "土地", KindLand.Label())
}

func TestStatuses(t *testing.T) {
	assert.Contains(t, Statuses(KindRental), StatusOccupied)
	assert.Contains(t, Statuses(KindLand), StatusContracted)
	assert.Contains(t, Statuses(KindParking), StatusUnderContract)
	assert.Empty(t, Statuses(KindBuilding))

	assert.True(t, StatusRecruiting.IsAvailable())
	assert.True(t, StatusUnderContract.IsClosed())
	assert.False(t, StatusPreparing.IsClosed())
}

func TestRentalUnit_DecodesWireShape(t *testing.T) {
	raw := `{"unit_id":7,"building_id":5,"building_name":"シゲザネハイツ","unit_number":"101",
	"floor":1,"room_layout":"1K","area":25.5,"monthly_rent":80000,"parking_available":true,
	"parking_fee":8000,"status":"募集中","images":{"main":"https://h/m.jpg","floorplan":"https://h/f.jpg"}}`

	var u RentalUnit
	require.NoError(t, json.Unmarshal([]byte(raw), &u))

	assert.Equal(t, int64(7), u.ID())
	assert.Equal(t, "シゲザネハイツ", u.BuildingName)
	require.NotNil(t, u.ParkingFee)
	assert.Equal(t, int64(8000), *u.ParkingFee)
	assert.Equal(t, "https://h/f.jpg", u.Images.Floorplan)
}

func TestUploadCredential_SAS(t *testing.T) {
	assert.Equal(t, "sv=1&sig=x", UploadCredential{Token: "?sv=1&sig=x"}.SAS())
	assert.Equal(t, "sv=2", UploadCredential{SASToken: "sv=2"}.SAS())
}

func TestUploadCredential_Expiry(t *testing.T) {
	exp, ok := UploadCredential{ExpiresOn: "2030-01-02T03:04:05Z"}.Expiry()
	require.True(t, ok)
	assert.Equal(t, 2030, exp.Year())

	_, ok = UploadCredential{}.Expiry()
	assert.False(t, ok)
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var nilSession *Session
	assert.True(t, nilSession.Expired(now))
	assert.False(t, (&Session{Token: "t"}).Expired(now))
	assert.True(t, (&Session{Token: "t", ExpiresAt: now}).Expired(now))
	assert.False(t, (&Session{Token: "t", ExpiresAt: now.Add(time.Hour)}).Expired(now))
}
