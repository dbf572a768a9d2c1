package models

// Status is a lifecycle state. Each kind allows a subset.
type Status string

const (
	StatusPreparing     Status = "準備中"
	StatusRecruiting    Status = "募集中"
	StatusOccupied      Status = "入居中"
	StatusContracted    Status = "成約済"
	StatusUnderContract Status = "契約中"
)

// Statuses returns the states a kind may be in. Master kinds have none.
func Statuses(k Kind) []Status {
	switch k {
	case KindRental, KindWeekly:
		return []Status{StatusPreparing, StatusRecruiting, StatusOccupied}
	case KindLand, KindHouse:
		return []Status{StatusPreparing, StatusRecruiting, StatusContracted}
	case KindParking:
		return []Status{StatusPreparing, StatusRecruiting, StatusUnderContract}
	}
	return nil
}

// IsAvailable reports whether the status counts as open for applicants.
func (s Status) IsAvailable() bool {
	return s == StatusRecruiting
}

// IsClosed reports whether the status counts as occupied or contracted.
func (s Status) IsClosed() bool {
	return s == StatusOccupied || s == StatusContracted || s == StatusUnderContract
}

// Structure is a building construction type.
type Structure string

const (
	StructureWood  Structure = "木造"
	StructureSteel Structure = "鉄骨"
	StructureRC    Structure = "RC"
	StructureSRC   Structure = "SRC"
)

// PropertyType distinguishes detached houses from second-hand condos.
type PropertyType string

const (
	PropertyTypeDetached  PropertyType = "戸建"
	PropertyTypeUsedCondo PropertyType = "中古マンション"
)
