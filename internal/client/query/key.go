package query

import (
	"strconv"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

// Key identifies a cached read. ID zero means the collection; Filter is a
// canonical descriptor of a filtered view (see package filters).
type Key struct {
	Kind   models.Kind
	ID     int64
	Filter string
}

func ListKey(kind models.Kind) Key { return Key{Kind: kind} }

func ItemKey(kind models.Kind, id int64) Key { return Key{Kind: kind, ID: id} }

func FilteredKey(kind models.Kind, filter string) Key { return Key{Kind: kind, Filter: filter} }

func (k Key) String() string {
	s := string(k.Kind)
	if k.ID != 0 {
		s += "/" + strconv.FormatInt(k.ID, 10)
	}
	if k.Filter != "" {
		s += "?" + k.Filter
	}
	return s
}
