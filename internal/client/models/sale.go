package models

// LandProperty is a parcel of land offered for sale.
type LandProperty struct {
	LandID           int64          `json:"land_id"`
	Address          string         `json:"address"`
	SalePrice        int64          `json:"sale_price"`
	LandArea         float64        `json:"land_area"`
	Zoning           string         `json:"zoning"`
	BuildingCoverage float64        `json:"building_coverage"`
	FloorAreaRatio   float64        `json:"floor_area_ratio"`
	RoadContact      string         `json:"road_contact"`
	LandCategory     string         `json:"land_category"`
	Status           Status         `json:"status"`
	Images           ImageSet       `json:"images"`
	LandDetails      map[string]any `json:"land_details,omitempty"`
	Remarks          string         `json:"remarks,omitempty"`
	CreatedAt        string         `json:"created_at,omitempty"`
	UpdatedAt        string         `json:"updated_at,omitempty"`
}

func (l LandProperty) ID() int64 { return l.LandID }

type LandPropertyInput struct {
	Address          string         `json:"address" validate:"required"`
	SalePrice        int64          `json:"sale_price" validate:"min=0,max=10000000000"`
	LandArea         float64        `json:"land_area" validate:"min=1,max=100000"`
	Zoning           string         `json:"zoning" validate:"required"`
	BuildingCoverage float64        `json:"building_coverage" validate:"min=0,max=100"`
	FloorAreaRatio   float64        `json:"floor_area_ratio" validate:"min=0,max=1000"`
	RoadContact      string         `json:"road_contact" validate:"required"`
	LandCategory     string         `json:"land_category" validate:"required"`
	Status           Status         `json:"status" validate:"oneof=準備中 募集中 成約済"`
	Images           ImageSet       `json:"images" validate:"-"`
	LandDetails      map[string]any `json:"land_details,omitempty" validate:"-"`
	Remarks          string         `json:"remarks,omitempty"`
}

func (in *LandPropertyInput) ImageSet() *ImageSet { return &in.Images }

// HouseProperty is a detached house or second-hand condo offered for sale.
type HouseProperty struct {
	HouseID      int64          `json:"house_id"`
	PropertyType PropertyType   `json:"property_type"`
	Address      string         `json:"address"`
	SalePrice    int64          `json:"sale_price"`
	LandArea     float64        `json:"land_area"`
	BuildingArea float64        `json:"building_area"`
	RoomLayout   string         `json:"room_layout"`
	BuildingAge  int            `json:"building_age"`
	Structure    Structure      `json:"structure"`
	Floor        int            `json:"floor"`
	Status       Status         `json:"status"`
	Images       ImageSet       `json:"images"`
	HouseDetails map[string]any `json:"house_details,omitempty"`
	Remarks      string         `json:"remarks,omitempty"`
	CreatedAt    string         `json:"created_at,omitempty"`
	UpdatedAt    string         `json:"updated_at,omitempty"`
}

func (h HouseProperty) ID() int64 { return h.HouseID }

type HousePropertyInput struct {
	PropertyType PropertyType   `json:"property_type" validate:"oneof=戸建 中古マンション"`
	Address      string         `json:"address" validate:"required"`
	SalePrice    int64          `json:"sale_price" validate:"min=0,max=10000000000"`
	LandArea     float64        `json:"land_area" validate:"min=1,max=100000"`
	BuildingArea float64        `json:"building_area" validate:"min=1,max=10000"`
	RoomLayout   string         `json:"room_layout" validate:"required"`
	BuildingAge  int            `json:"building_age" validate:"min=0,max=100"`
	Structure    Structure      `json:"structure" validate:"required"`
	Floor        int            `json:"floor" validate:"min=1,max=100"`
	Status       Status         `json:"status" validate:"oneof=準備中 募集中 成約済"`
	Images       ImageSet       `json:"images" validate:"-"`
	HouseDetails map[string]any `json:"house_details,omitempty" validate:"-"`
	Remarks      string         `json:"remarks,omitempty"`
}

func (in *HousePropertyInput) ImageSet() *ImageSet { return &in.Images }

// ParkingSpace is one rentable space inside a ParkingLot. Spaces carry no
// images of their own.
type ParkingSpace struct {
	ParkingSpaceID    int64  `json:"parking_space_id"`
	ParkingLotID      int64  `json:"parking_lot_id"`
	ParkingLotName    string `json:"parking_lot_name,omitempty"`
	ParkingLotAddress string `json:"parking_lot_address,omitempty"`
	SpaceNumber       string `json:"space_number"`
	MonthlyFee        int64  `json:"monthly_fee"`
	VehicleSize       string `json:"vehicle_size"`
	Status            Status `json:"status"`
	Remarks           string `json:"remarks,omitempty"`
	CreatedAt         string `json:"created_at,omitempty"`
	UpdatedAt         string `json:"updated_at,omitempty"`
}

func (p ParkingSpace) ID() int64 { return p.ParkingSpaceID }

type ParkingSpaceInput struct {
	ParkingLotID int64  `json:"parking_lot_id" validate:"min=1"`
	SpaceNumber  string `json:"space_number" validate:"required"`
	MonthlyFee   int64  `json:"monthly_fee" validate:"min=0,max=100000"`
	VehicleSize  string `json:"vehicle_size" validate:"required"`
	Status       Status `json:"status" validate:"oneof=準備中 募集中 契約中"`
	Remarks      string `json:"remarks,omitempty"`
}
