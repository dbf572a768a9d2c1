package filters

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

// Sort is a listing order.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortAreaDesc  Sort = "area-desc"
	SortAgeAsc    Sort = "age-asc"
)

// Criteria is the union of every search field. Zero values mean "not
// set"; Parse only fills the fields the kind supports.
type Criteria struct {
	Keyword            string
	Status             models.Status
	MinPrice, MaxPrice int64
	MinArea, MaxArea   float64
	RoomLayout         string
	BuildingID         int64
	ParkingLotID       int64
	PetsAllowed        bool
	InstrumentsAllowed bool
	ParkingAvailable   bool
	Zoning             string
	PropertyType       models.PropertyType
	Sort               Sort
}

// Parameter names accepted on the command line, per kind.
const (
	paramKeyword     = "q"
	paramStatus      = "status"
	paramMin         = "min"
	paramMax         = "max"
	paramMinArea     = "min-area"
	paramMaxArea     = "max-area"
	paramLayout      = "layout"
	paramBuilding    = "building"
	paramLot         = "lot"
	paramPets        = "pets"
	paramInstruments = "instruments"
	paramParking     = "parking"
	paramZoning      = "zoning"
	paramType        = "type"
	paramSort        = "sort"
)

var kindParams = map[models.Kind][]string{
	models.KindRental:     {paramKeyword, paramStatus, paramMin, paramMax, paramLayout, paramBuilding, paramPets, paramInstruments, paramParking, paramSort},
	models.KindWeekly:     {paramKeyword, paramStatus, paramMin, paramMax, paramLayout, paramBuilding, paramPets, paramInstruments, paramParking, paramSort},
	models.KindLand:       {paramKeyword, paramStatus, paramMin, paramMax, paramMinArea, paramMaxArea, paramZoning, paramSort},
	models.KindHouse:      {paramKeyword, paramStatus, paramType, paramMin, paramMax, paramSort},
	models.KindParking:    {paramKeyword, paramStatus, paramLot, paramMin, paramMax, paramSort},
	models.KindBuilding:   {paramKeyword, paramSort},
	models.KindParkingLot: {paramKeyword, paramSort},
}

var kindSorts = map[models.Kind][]Sort{
	models.KindRental:  {SortNewest, SortPriceAsc, SortPriceDesc},
	models.KindWeekly:  {SortNewest, SortPriceAsc, SortPriceDesc},
	models.KindLand:    {SortNewest, SortPriceAsc, SortPriceDesc, SortAreaDesc},
	models.KindHouse:   {SortNewest, SortPriceAsc, SortPriceDesc, SortAgeAsc},
	models.KindParking: {SortNewest, SortPriceAsc, SortPriceDesc},
}

var statusAliases = map[string]models.Status{
	"preparing":      models.StatusPreparing,
	"available":      models.StatusRecruiting,
	"occupied":       models.StatusOccupied,
	"contracted":     models.StatusContracted,
	"under-contract": models.StatusUnderContract,
}

// Params lists the parameter names kind accepts.
func Params(kind models.Kind) []string {
	return append([]string(nil), kindParams[kind]...)
}

// Sorts lists the orders kind supports. Every kind supports SortNewest.
func Sorts(kind models.Kind) []Sort {
	if s, ok := kindSorts[kind]; ok {
		return append([]Sort(nil), s...)
	}
	return []Sort{SortNewest}
}

// Parse reads "name=value" arguments. A bare flag name ("pets") means
// true. Parameters the kind does not support are rejected.
func Parse(kind models.Kind, args []string) (Criteria, error) {
	var c Criteria
	allowed := map[string]bool{}
	for _, p := range kindParams[kind] {
		allowed[p] = true
	}

	for _, arg := range args {
		name, value, hasValue := strings.Cut(arg, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if !allowed[name] {
			return Criteria{}, fmt.Errorf("unknown filter %q for %s", name, kind)
		}
		if !hasValue && !isFlag(name) {
			return Criteria{}, fmt.Errorf("filter %q needs a value", name)
		}
		if err := c.set(kind, name, value, hasValue); err != nil {
			return Criteria{}, fmt.Errorf("filter %s: %w", name, err)
		}
	}
	return c, nil
}

func isFlag(name string) bool {
	return name == paramPets || name == paramInstruments || name == paramParking
}

func (c *Criteria) set(kind models.Kind, name, value string, hasValue bool) error {
	var err error
	switch name {
	case paramKeyword:
		c.Keyword = value
	case paramStatus:
		c.Status, err = ParseStatus(kind, value)
	case paramMin:
		c.MinPrice, err = strconv.ParseInt(value, 10, 64)
	case paramMax:
		c.MaxPrice, err = strconv.ParseInt(value, 10, 64)
	case paramMinArea:
		c.MinArea, err = strconv.ParseFloat(value, 64)
	case paramMaxArea:
		c.MaxArea, err = strconv.ParseFloat(value, 64)
	case paramLayout:
		c.RoomLayout = value
	case paramBuilding:
		c.BuildingID, err = strconv.ParseInt(value, 10, 64)
	case paramLot:
		c.ParkingLotID, err = strconv.ParseInt(value, 10, 64)
	case paramPets:
		c.PetsAllowed, err = parseFlag(value, hasValue)
	case paramInstruments:
		c.InstrumentsAllowed, err = parseFlag(value, hasValue)
	case paramParking:
		c.ParkingAvailable, err = parseFlag(value, hasValue)
	case paramZoning:
		c.Zoning = value
	case paramType:
		c.PropertyType, err = parsePropertyType(value)
	case paramSort:
		c.Sort, err = parseSort(kind, value)
	}
	return err
}

func parseFlag(value string, hasValue bool) (bool, error) {
	if !hasValue {
		return true, nil
	}
	return strconv.ParseBool(value)
}

// ParseStatus accepts a status as stored or by its ASCII alias and checks
// that kind allows it.
func ParseStatus(kind models.Kind, value string) (models.Status, error) {
	s := models.Status(value)
	if alias, ok := statusAliases[strings.ToLower(value)]; ok {
		s = alias
	}
	for _, allowed := range models.Statuses(kind) {
		if s == allowed {
			return s, nil
		}
	}
	return "", fmt.Errorf("%q is not a %s status", value, kind)
}

func parsePropertyType(value string) (models.PropertyType, error) {
	switch strings.ToLower(value) {
	case string(models.PropertyTypeDetached), "detached":
		return models.PropertyTypeDetached, nil
	case string(models.PropertyTypeUsedCondo), "condo":
		return models.PropertyTypeUsedCondo, nil
	}
	return "", fmt.Errorf("unknown property type %q", value)
}

func parseSort(kind models.Kind, value string) (Sort, error) {
	for _, s := range Sorts(kind) {
		if string(s) == value {
			return s, nil
		}
	}
	return "", fmt.Errorf("unsupported sort %q", value)
}

// IsZero reports whether c neither filters nor reorders.
func (c Criteria) IsZero() bool {
	return c == Criteria{} || c == Criteria{Sort: SortNewest}
}

// Key is a canonical descriptor of c: equal criteria give equal keys no
// matter how they were typed. The zero Criteria has an empty key.
func (c Criteria) Key() string {
	if c.IsZero() {
		return ""
	}
	v := url.Values{}
	setStr := func(name, s string) {
		if s != "" {
			v.Set(name, s)
		}
	}
	setInt := func(name string, n int64) {
		if n != 0 {
			v.Set(name, strconv.FormatInt(n, 10))
		}
	}
	setFloat := func(name string, f float64) {
		if f != 0 {
			v.Set(name, strconv.FormatFloat(f, 'f', -1, 64))
		}
	}
	setBool := func(name string, b bool) {
		if b {
			v.Set(name, "1")
		}
	}

	setStr(paramKeyword, strings.ToLower(c.Keyword))
	setStr(paramStatus, string(c.Status))
	setInt(paramMin, c.MinPrice)
	setInt(paramMax, c.MaxPrice)
	setFloat(paramMinArea, c.MinArea)
	setFloat(paramMaxArea, c.MaxArea)
	setStr(paramLayout, c.RoomLayout)
	setInt(paramBuilding, c.BuildingID)
	setInt(paramLot, c.ParkingLotID)
	setBool(paramPets, c.PetsAllowed)
	setBool(paramInstruments, c.InstrumentsAllowed)
	setBool(paramParking, c.ParkingAvailable)
	setStr(paramZoning, c.Zoning)
	setStr(paramType, string(c.PropertyType))
	if c.Sort != SortNewest {
		setStr(paramSort, string(c.Sort))
	}
	// Encode sorts by name.
	return v.Encode()
}
