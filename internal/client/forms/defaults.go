package forms

import "github.com/miy4x/shigezane-admin/internal/client/models"

// Starting values for create forms.

func DefaultRentalInput() models.RentalUnitInput {
	return models.RentalUnitInput{Floor: 1, Status: models.StatusPreparing}
}

func DefaultWeeklyInput() models.WeeklyUnitInput {
	return models.WeeklyUnitInput{Floor: 1, Status: models.StatusPreparing}
}

func DefaultLandInput() models.LandPropertyInput {
	return models.LandPropertyInput{Status: models.StatusPreparing}
}

func DefaultHouseInput() models.HousePropertyInput {
	return models.HousePropertyInput{
		PropertyType: models.PropertyTypeDetached,
		Structure:    models.StructureWood,
		Floor:        1,
		Status:       models.StatusPreparing,
	}
}

func DefaultParkingSpaceInput() models.ParkingSpaceInput {
	return models.ParkingSpaceInput{Status: models.StatusPreparing}
}

func DefaultBuildingInput() models.BuildingInput {
	return models.BuildingInput{Structure: models.StructureRC, TotalFloors: 1}
}

func DefaultParkingLotInput() models.ParkingLotInput {
	return models.ParkingLotInput{TotalSpaces: 1}
}
