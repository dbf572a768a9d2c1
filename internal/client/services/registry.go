package services

import (
	"fmt"

	"github.com/miy4x/shigezane-admin/internal/client/client"
	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/client/query"
	"github.com/miy4x/shigezane-admin/internal/logging"
)

// Registry holds one EntityService per kind.
type Registry struct {
	Rentals       *EntityService[models.RentalUnit, models.RentalUnitInput]
	Weeklies      *EntityService[models.WeeklyUnit, models.WeeklyUnitInput]
	Lands         *EntityService[models.LandProperty, models.LandPropertyInput]
	Houses        *EntityService[models.HouseProperty, models.HousePropertyInput]
	ParkingSpaces *EntityService[models.ParkingSpace, models.ParkingSpaceInput]
	Buildings     *EntityService[models.Building, models.BuildingInput]
	ParkingLots   *EntityService[models.ParkingLot, models.ParkingLotInput]
}

func NewRegistry(api *client.API, cache *query.Cache, uploader Uploader, logger logging.Logger) *Registry {
	return &Registry{
		Rentals: NewEntityService(models.KindRental, Store[models.RentalUnit, models.RentalUnitInput](api.Rentals), cache, uploader, logger,
			func(r models.RentalUnit) models.Status { return r.Status }),
		Weeklies: NewEntityService(models.KindWeekly, Store[models.WeeklyUnit, models.WeeklyUnitInput](api.Weeklies), cache, uploader, logger,
			func(r models.WeeklyUnit) models.Status { return r.Status }),
		Lands: NewEntityService(models.KindLand, Store[models.LandProperty, models.LandPropertyInput](api.Lands), cache, uploader, logger,
			func(r models.LandProperty) models.Status { return r.Status }),
		Houses: NewEntityService(models.KindHouse, Store[models.HouseProperty, models.HousePropertyInput](api.Houses), cache, uploader, logger,
			func(r models.HouseProperty) models.Status { return r.Status }),
		ParkingSpaces: NewEntityService(models.KindParking, Store[models.ParkingSpace, models.ParkingSpaceInput](api.ParkingSpaces), cache, uploader, logger,
			func(r models.ParkingSpace) models.Status { return r.Status }),
		Buildings: NewEntityService(models.KindBuilding, Store[models.Building, models.BuildingInput](api.Buildings), cache, uploader, logger, nil),
		ParkingLots: NewEntityService(models.KindParkingLot, Store[models.ParkingLot, models.ParkingLotInput](api.ParkingLots), cache, uploader, logger, nil),
	}
}

// Entity returns the service of kind.
func (r *Registry) Entity(kind models.Kind) (Entity, error) {
	switch kind {
	case models.KindRental:
		return r.Rentals, nil
	case models.KindWeekly:
		return r.Weeklies, nil
	case models.KindLand:
		return r.Lands, nil
	case models.KindHouse:
		return r.Houses, nil
	case models.KindParking:
		return r.ParkingSpaces, nil
	case models.KindBuilding:
		return r.Buildings, nil
	case models.KindParkingLot:
		return r.ParkingLots, nil
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}
