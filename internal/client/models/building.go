package models

// Building is a master record referenced by rental and weekly units.
type Building struct {
	BuildingID  int64     `json:"building_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	BuildingAge int       `json:"building_age"`
	Structure   Structure `json:"structure"`
	TotalFloors int       `json:"total_floors"`
	CreatedAt   string    `json:"created_at,omitempty"`
	UpdatedAt   string    `json:"updated_at,omitempty"`
}

func (b Building) ID() int64 { return b.BuildingID }

type BuildingInput struct {
	Name        string    `json:"name" validate:"required"`
	Address     string    `json:"address" validate:"required"`
	BuildingAge int       `json:"building_age" validate:"min=0,max=100"`
	Structure   Structure `json:"structure" validate:"oneof=木造 鉄骨 RC SRC"`
	TotalFloors int       `json:"total_floors" validate:"min=1,max=100"`
}

// ParkingLot is a master record referenced by parking spaces.
type ParkingLot struct {
	ParkingLotID int64          `json:"parking_lot_id"`
	Name         string         `json:"name"`
	Address      string         `json:"address"`
	TotalSpaces  int            `json:"total_spaces"`
	Images       ImageSet       `json:"images"`
	LotFeatures  map[string]any `json:"lot_features,omitempty"`
	CreatedAt    string         `json:"created_at,omitempty"`
	UpdatedAt    string         `json:"updated_at,omitempty"`
}

func (p ParkingLot) ID() int64 { return p.ParkingLotID }

type ParkingLotInput struct {
	Name        string         `json:"name" validate:"required"`
	Address     string         `json:"address" validate:"required"`
	TotalSpaces int            `json:"total_spaces" validate:"min=1,max=1000"`
	Images      ImageSet       `json:"images" validate:"-"`
	LotFeatures map[string]any `json:"lot_features,omitempty" validate:"-"`
}

func (in *ParkingLotInput) ImageSet() *ImageSet { return &in.Images }
