package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

// PathsFor returns the route pair for kind.
func PathsFor(kind models.Kind) Paths {
	switch kind {
	case models.KindRental:
		return Paths{Collection: "/rental-units", Item: "/rental-unit"}
	case models.KindWeekly:
		return Paths{Collection: "/weekly-units", Item: "/weekly-unit"}
	case models.KindLand:
		return Paths{Collection: "/land-properties", Item: "/land-property"}
	case models.KindHouse:
		return Paths{Collection: "/house-properties", Item: "/house-property"}
	case models.KindParking:
		return Paths{Collection: "/parking-spaces", Item: "/parking-space"}
	case models.KindBuilding:
		return Paths{Collection: "/buildings", Item: "/building"}
	case models.KindParkingLot:
		return Paths{Collection: "/parking-lots", Item: "/parking-lot"}
	}
	return Paths{Collection: "/" + string(kind) + "s", Item: "/" + string(kind)}
}

// API bundles every backend endpoint the console uses.
type API struct {
	t Transport

	Rentals       *Resource[models.RentalUnit, models.RentalUnitInput]
	Weeklies      *Resource[models.WeeklyUnit, models.WeeklyUnitInput]
	Lands         *Resource[models.LandProperty, models.LandPropertyInput]
	Houses        *Resource[models.HouseProperty, models.HousePropertyInput]
	ParkingSpaces *Resource[models.ParkingSpace, models.ParkingSpaceInput]
	Buildings     *Resource[models.Building, models.BuildingInput]
	ParkingLots   *Resource[models.ParkingLot, models.ParkingLotInput]
}

func NewAPI(t Transport) *API {
	return &API{
		t:             t,
		Rentals:       NewResource[models.RentalUnit, models.RentalUnitInput](t, PathsFor(models.KindRental)),
		Weeklies:      NewResource[models.WeeklyUnit, models.WeeklyUnitInput](t, PathsFor(models.KindWeekly)),
		Lands:         NewResource[models.LandProperty, models.LandPropertyInput](t, PathsFor(models.KindLand)),
		Houses:        NewResource[models.HouseProperty, models.HousePropertyInput](t, PathsFor(models.KindHouse)),
		ParkingSpaces: NewResource[models.ParkingSpace, models.ParkingSpaceInput](t, PathsFor(models.KindParking)),
		Buildings:     NewResource[models.Building, models.BuildingInput](t, PathsFor(models.KindBuilding)),
		ParkingLots:   NewResource[models.ParkingLot, models.ParkingLotInput](t, PathsFor(models.KindParkingLot)),
	}
}

// Login exchanges operator credentials for a session token.
func (a *API) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	var out models.LoginResult
	err := a.t.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   map[string]string{"email": email, "password": password},
	}, &out)
	return out, err
}

// UploadCredential asks the backend for a fresh single-container write grant.
func (a *API) UploadCredential(ctx context.Context) (models.UploadCredential, error) {
	var out models.UploadCredential
	err := a.t.Do(ctx, Request{Method: http.MethodPost, Path: "/upload/sas-token"}, &out)
	return out, err
}

// DeleteImage asks the backend to remove the stored object at imageURL.
func (a *API) DeleteImage(ctx context.Context, imageURL string) error {
	return a.t.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   "/images",
		Query:  url.Values{"url": []string{imageURL}},
	}, nil)
}
