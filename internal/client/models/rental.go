package models

// RentalUnit is a monthly-rent unit inside a Building.
type RentalUnit struct {
	UnitID                    int64    `json:"unit_id"`
	BuildingID                int64    `json:"building_id"`
	BuildingName              string   `json:"building_name,omitempty"`
	BuildingAddress           string   `json:"building_address,omitempty"`
	UnitNumber                string   `json:"unit_number"`
	Floor                     int      `json:"floor"`
	RoomLayout                string   `json:"room_layout"`
	Area                      float64  `json:"area"`
	MonthlyRent               int64    `json:"monthly_rent"`
	ManagementFee             int64    `json:"management_fee"`
	Deposit                   int64    `json:"deposit"`
	KeyMoney                  int64    `json:"key_money"`
	ParkingAvailable          bool     `json:"parking_available"`
	ParkingFee                *int64   `json:"parking_fee,omitempty"`
	MainDirection             string   `json:"main_direction,omitempty"`
	PetsAllowed               bool     `json:"pets_allowed"`
	MusicalInstrumentsAllowed bool     `json:"musical_instruments_allowed"`
	Status                    Status   `json:"status"`
	Images                    ImageSet `json:"images"`
	UnitFeatures              []string `json:"unit_features,omitempty"`
	Remarks                   string   `json:"remarks,omitempty"`
	CreatedAt                 string   `json:"created_at,omitempty"`
	UpdatedAt                 string   `json:"updated_at,omitempty"`
}

func (u RentalUnit) ID() int64 { return u.UnitID }

type RentalUnitInput struct {
	BuildingID                int64    `json:"building_id" validate:"min=1"`
	UnitNumber                string   `json:"unit_number" validate:"required"`
	Floor                     int      `json:"floor" validate:"min=1,max=50"`
	RoomLayout                string   `json:"room_layout" validate:"required"`
	Area                      float64  `json:"area" validate:"min=1,max=1000"`
	MonthlyRent               int64    `json:"monthly_rent" validate:"min=0,max=10000000"`
	ManagementFee             int64    `json:"management_fee" validate:"min=0,max=100000"`
	Deposit                   int64    `json:"deposit" validate:"min=0"`
	KeyMoney                  int64    `json:"key_money" validate:"min=0"`
	ParkingAvailable          bool     `json:"parking_available"`
	ParkingFee                *int64   `json:"parking_fee,omitempty" validate:"omitempty,min=0"`
	MainDirection             string   `json:"main_direction,omitempty"`
	PetsAllowed               bool     `json:"pets_allowed"`
	MusicalInstrumentsAllowed bool     `json:"musical_instruments_allowed"`
	Status                    Status   `json:"status" validate:"oneof=準備中 募集中 入居中"`
	Images                    ImageSet `json:"images" validate:"-"`
	UnitFeatures              []string `json:"unit_features,omitempty"`
	Remarks                   string   `json:"remarks,omitempty"`
}

func (in *RentalUnitInput) ImageSet() *ImageSet { return &in.Images }

func (in *RentalUnitInput) Parking() (available bool, fee *int64) {
	return in.ParkingAvailable, in.ParkingFee
}

func (in *RentalUnitInput) DropParkingFee() { in.ParkingFee = nil }

// WeeklyUnit is a short-stay unit priced per day, week and month.
type WeeklyUnit struct {
	WeeklyUnitID              int64    `json:"weekly_unit_id"`
	BuildingID                int64    `json:"building_id"`
	BuildingName              string   `json:"building_name,omitempty"`
	BuildingAddress           string   `json:"building_address,omitempty"`
	UnitNumber                string   `json:"unit_number"`
	Floor                     int      `json:"floor"`
	RoomLayout                string   `json:"room_layout"`
	Area                      float64  `json:"area"`
	DailyRate                 int64    `json:"daily_rate"`
	WeeklyRate                int64    `json:"weekly_rate"`
	MonthlyRate               int64    `json:"monthly_rate"`
	ManagementFee             int64    `json:"management_fee"`
	ParkingAvailable          bool     `json:"parking_available"`
	ParkingFee                *int64   `json:"parking_fee,omitempty"`
	MainDirection             string   `json:"main_direction,omitempty"`
	PetsAllowed               bool     `json:"pets_allowed"`
	MusicalInstrumentsAllowed bool     `json:"musical_instruments_allowed"`
	Status                    Status   `json:"status"`
	Images                    ImageSet `json:"images"`
	UnitFeatures              []string `json:"unit_features,omitempty"`
	Remarks                   string   `json:"remarks,omitempty"`
	CreatedAt                 string   `json:"created_at,omitempty"`
	UpdatedAt                 string   `json:"updated_at,omitempty"`
}

func (u WeeklyUnit) ID() int64 { return u.WeeklyUnitID }

type WeeklyUnitInput struct {
	BuildingID                int64    `json:"building_id" validate:"min=1"`
	UnitNumber                string   `json:"unit_number" validate:"required"`
	Floor                     int      `json:"floor" validate:"min=1,max=50"`
	RoomLayout                string   `json:"room_layout" validate:"required"`
	Area                      float64  `json:"area" validate:"min=1,max=1000"`
	DailyRate                 int64    `json:"daily_rate" validate:"min=0,max=1000000"`
	WeeklyRate                int64    `json:"weekly_rate" validate:"min=0,max=1000000"`
	MonthlyRate               int64    `json:"monthly_rate" validate:"min=0,max=1000000"`
	ManagementFee             int64    `json:"management_fee" validate:"min=0,max=100000"`
	ParkingAvailable          bool     `json:"parking_available"`
	ParkingFee                *int64   `json:"parking_fee,omitempty" validate:"omitempty,min=0"`
	MainDirection             string   `json:"main_direction,omitempty"`
	PetsAllowed               bool     `json:"pets_allowed"`
	MusicalInstrumentsAllowed bool     `json:"musical_instruments_allowed"`
	Status                    Status   `json:"status" validate:"oneof=準備中 募集中 入居中"`
	Images                    ImageSet `json:"images" validate:"-"`
	UnitFeatures              []string `json:"unit_features,omitempty"`
	Remarks                   string   `json:"remarks,omitempty"`
}

func (in *WeeklyUnitInput) ImageSet() *ImageSet { return &in.Images }

func (in *WeeklyUnitInput) Parking() (available bool, fee *int64) {
	return in.ParkingAvailable, in.ParkingFee
}

func (in *WeeklyUnitInput) DropParkingFee() { in.ParkingFee = nil }

// ParkingOption is implemented by inputs with a parking toggle and fee.
type ParkingOption interface {
	Parking() (available bool, fee *int64)
	DropParkingFee()
}
