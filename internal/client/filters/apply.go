package filters

import (
	"sort"
	"strings"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

// facts is what the filters look at in a record.
type facts struct {
	id           int64
	text         []string
	status       models.Status
	price        int64
	area         float64
	age          int
	layout       string
	buildingID   int64
	lotID        int64
	pets         bool
	instruments  bool
	parking      bool
	zoning       string
	propertyType models.PropertyType
}

// Weekly units are priced by their monthly rate so that ranges are
// comparable with rental rents.
func factsOf(v any) facts {
	switch r := v.(type) {
	case models.RentalUnit:
		return facts{
			id: r.UnitID, text: []string{r.BuildingName, r.BuildingAddress, r.UnitNumber, r.Remarks},
			status: r.Status, price: r.MonthlyRent, area: r.Area, layout: r.RoomLayout,
			buildingID: r.BuildingID, pets: r.PetsAllowed, instruments: r.MusicalInstrumentsAllowed,
			parking: r.ParkingAvailable,
		}
	case models.WeeklyUnit:
		return facts{
			id: r.WeeklyUnitID, text: []string{r.BuildingName, r.BuildingAddress, r.UnitNumber, r.Remarks},
			status: r.Status, price: r.MonthlyRate, area: r.Area, layout: r.RoomLayout,
			buildingID: r.BuildingID, pets: r.PetsAllowed, instruments: r.MusicalInstrumentsAllowed,
			parking: r.ParkingAvailable,
		}
	case models.LandProperty:
		return facts{
			id: r.LandID, text: []string{r.Address, r.LandCategory, r.Remarks},
			status: r.Status, price: r.SalePrice, area: r.LandArea, zoning: r.Zoning,
		}
	case models.HouseProperty:
		return facts{
			id: r.HouseID, text: []string{r.Address, r.RoomLayout, r.Remarks},
			status: r.Status, price: r.SalePrice, area: r.BuildingArea, age: r.BuildingAge,
			layout: r.RoomLayout, propertyType: r.PropertyType,
		}
	case models.ParkingSpace:
		return facts{
			id: r.ParkingSpaceID, text: []string{r.ParkingLotName, r.ParkingLotAddress, r.SpaceNumber, r.Remarks},
			status: r.Status, price: r.MonthlyFee, lotID: r.ParkingLotID,
		}
	case models.Building:
		return facts{id: r.BuildingID, text: []string{r.Name, r.Address}}
	case models.ParkingLot:
		return facts{id: r.ParkingLotID, text: []string{r.Name, r.Address}}
	}
	return facts{}
}

func (c Criteria) match(f facts) bool {
	if c.Keyword != "" && !containsFold(f.text, c.Keyword) {
		return false
	}
	switch {
	case c.Status != "" && f.status != c.Status,
		c.MinPrice != 0 && f.price < c.MinPrice,
		c.MaxPrice != 0 && f.price > c.MaxPrice,
		c.MinArea != 0 && f.area < c.MinArea,
		c.MaxArea != 0 && f.area > c.MaxArea,
		c.RoomLayout != "" && f.layout != c.RoomLayout,
		c.BuildingID != 0 && f.buildingID != c.BuildingID,
		c.ParkingLotID != 0 && f.lotID != c.ParkingLotID,
		c.PetsAllowed && !f.pets,
		c.InstrumentsAllowed && !f.instruments,
		c.ParkingAvailable && !f.parking,
		c.Zoning != "" && f.zoning != c.Zoning,
		c.PropertyType != "" && f.propertyType != c.PropertyType:
		return false
	}
	return true
}

func containsFold(texts []string, keyword string) bool {
	k := strings.ToLower(keyword)
	for _, t := range texts {
		if strings.Contains(strings.ToLower(t), k) {
			return true
		}
	}
	return false
}

func (c Criteria) less(a, b facts) bool {
	switch c.Sort {
	case SortPriceAsc:
		return a.price < b.price
	case SortPriceDesc:
		return a.price > b.price
	case SortAreaDesc:
		return a.area > b.area
	case SortAgeAsc:
		return a.age < b.age
	}
	return a.id > b.id
}

// Apply returns the records of items that match c, ordered by c.Sort
// (newest first when unset). items is not modified and ties keep their
// original order.
func Apply[T any](items []T, c Criteria) []T {
	type row struct {
		item T
		f    facts
	}
	rows := make([]row, 0, len(items))
	for _, it := range items {
		f := factsOf(it)
		if c.match(f) {
			rows = append(rows, row{it, f})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return c.less(rows[i].f, rows[j].f) })

	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.item
	}
	return out
}
