package forms

import "github.com/miy4x/shigezane-admin/internal/client/models"

// The *InputFrom functions copy a fetched record into its editable input
// field by field. A field added to a record but not to its input fails to
// compile here instead of silently disappearing on save.

func RentalInputFrom(u models.RentalUnit) models.RentalUnitInput {
	return models.RentalUnitInput{
		BuildingID:                u.BuildingID,
		UnitNumber:                u.UnitNumber,
		Floor:                     u.Floor,
		RoomLayout:                u.RoomLayout,
		Area:                      u.Area,
		MonthlyRent:               u.MonthlyRent,
		ManagementFee:             u.ManagementFee,
		Deposit:                   u.Deposit,
		KeyMoney:                  u.KeyMoney,
		ParkingAvailable:          u.ParkingAvailable,
		ParkingFee:                copyInt64(u.ParkingFee),
		MainDirection:             u.MainDirection,
		PetsAllowed:               u.PetsAllowed,
		MusicalInstrumentsAllowed: u.MusicalInstrumentsAllowed,
		Status:                    u.Status,
		Images:                    u.Images.Clone(),
		UnitFeatures:              append([]string(nil), u.UnitFeatures...),
		Remarks:                   u.Remarks,
	}
}

func WeeklyInputFrom(u models.WeeklyUnit) models.WeeklyUnitInput {
	return models.WeeklyUnitInput{
		BuildingID:                u.BuildingID,
		UnitNumber:                u.UnitNumber,
		Floor:                     u.Floor,
		RoomLayout:                u.RoomLayout,
		Area:                      u.Area,
		DailyRate:                 u.DailyRate,
		WeeklyRate:                u.WeeklyRate,
		MonthlyRate:               u.MonthlyRate,
		ManagementFee:             u.ManagementFee,
		ParkingAvailable:          u.ParkingAvailable,
		ParkingFee:                copyInt64(u.ParkingFee),
		MainDirection:             u.MainDirection,
		PetsAllowed:               u.PetsAllowed,
		MusicalInstrumentsAllowed: u.MusicalInstrumentsAllowed,
		Status:                    u.Status,
		Images:                    u.Images.Clone(),
		UnitFeatures:              append([]string(nil), u.UnitFeatures...),
		Remarks:                   u.Remarks,
	}
}

func LandInputFrom(l models.LandProperty) models.LandPropertyInput {
	return models.LandPropertyInput{
		Address:          l.Address,
		SalePrice:        l.SalePrice,
		LandArea:         l.LandArea,
		Zoning:           l.Zoning,
		BuildingCoverage: l.BuildingCoverage,
		FloorAreaRatio:   l.FloorAreaRatio,
		RoadContact:      l.RoadContact,
		LandCategory:     l.LandCategory,
		Status:           l.Status,
		Images:           l.Images.Clone(),
		LandDetails:      copyDetails(l.LandDetails),
		Remarks:          l.Remarks,
	}
}

func HouseInputFrom(h models.HouseProperty) models.HousePropertyInput {
	return models.HousePropertyInput{
		PropertyType: h.PropertyType,
		Address:      h.Address,
		SalePrice:    h.SalePrice,
		LandArea:     h.LandArea,
		BuildingArea: h.BuildingArea,
		RoomLayout:   h.RoomLayout,
		BuildingAge:  h.BuildingAge,
		Structure:    h.Structure,
		Floor:        h.Floor,
		Status:       h.Status,
		Images:       h.Images.Clone(),
		HouseDetails: copyDetails(h.HouseDetails),
		Remarks:      h.Remarks,
	}
}

func ParkingSpaceInputFrom(p models.ParkingSpace) models.ParkingSpaceInput {
	return models.ParkingSpaceInput{
		ParkingLotID: p.ParkingLotID,
		SpaceNumber:  p.SpaceNumber,
		MonthlyFee:   p.MonthlyFee,
		VehicleSize:  p.VehicleSize,
		Status:       p.Status,
		Remarks:      p.Remarks,
	}
}

func BuildingInputFrom(b models.Building) models.BuildingInput {
	return models.BuildingInput{
		Name:        b.Name,
		Address:     b.Address,
		BuildingAge: b.BuildingAge,
		Structure:   b.Structure,
		TotalFloors: b.TotalFloors,
	}
}

func ParkingLotInputFrom(p models.ParkingLot) models.ParkingLotInput {
	return models.ParkingLotInput{
		Name:        p.Name,
		Address:     p.Address,
		TotalSpaces: p.TotalSpaces,
		Images:      p.Images.Clone(),
		LotFeatures: copyDetails(p.LotFeatures),
	}
}

func copyInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyDetails(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
