package models

import (
	"fmt"
	"strings"
)

// Kind identifies one of the seven entity kinds.
type Kind string

const (
	KindRental     Kind = "rental"
	KindWeekly     Kind = "weekly"
	KindLand       Kind = "land"
	KindHouse      Kind = "house"
	KindParking    Kind = "parking"
	KindBuilding   Kind = "building"
	KindParkingLot Kind = "parking-lot"
)

// PropertyKinds lists the five kinds shown on the dashboard, in menu order.
func PropertyKinds() []Kind {
	return []Kind{KindRental, KindWeekly, KindLand, KindHouse, KindParking}
}

// AllKinds lists property kinds followed by the master kinds.
func AllKinds() []Kind {
	return append(PropertyKinds(), KindBuilding, KindParkingLot)
}

var kindLabels = map[Kind]string{
	KindRental:     "賃貸物件",
	KindWeekly:     "ウィークリー物件",
	KindLand:       "土地",
	KindHouse:      "戸建・マンション",
	KindParking:    "駐車場",
	KindBuilding:   "建物",
	KindParkingLot: "駐車場マスタ",
}

// Label is the display name used in menus, toasts and export file names.
func (k Kind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// ParseKind accepts the kind name as typed at the prompt. A few aliases are
// accepted for convenience.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rental", "rentals", "rental-unit", "rental-units":
		return KindRental, nil
	case "weekly", "weekly-unit", "weekly-units":
		return KindWeekly, nil
	case "land", "lands", "land-property":
		return KindLand, nil
	case "house", "houses", "house-property":
		return KindHouse, nil
	case "parking", "parking-space", "parking-spaces":
		return KindParking, nil
	case "building", "buildings":
		return KindBuilding, nil
	case "parking-lot", "parking-lots", "lot", "lots":
		return KindParkingLot, nil
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// Dependents returns the kinds whose cached records embed data of k.
// Rental and weekly units carry building_name/building_address; parking
// spaces carry parking_lot_name/parking_lot_address.
func (k Kind) Dependents() []Kind {
	switch k {
	case KindBuilding:
		return []Kind{KindRental, KindWeekly}
	case KindParkingLot:
		return []Kind{KindParking}
	}
	return nil
}

// RequiredImage is the role-specific diagram a kind must carry in addition
// to the main image. ok is false for kinds with no such requirement.
func (k Kind) RequiredImage() (role ImageRole, ok bool) {
	switch k {
	case KindRental, KindWeekly, KindHouse:
		return RoleFloorplan, true
	case KindLand:
		return RoleSurvey, true
	case KindParkingLot:
		return RoleLayout, true
	}
	return "", false
}

// HasImages reports whether records of kind k carry an image set.
func (k Kind) HasImages() bool {
	return k != KindParking && k != KindBuilding
}
