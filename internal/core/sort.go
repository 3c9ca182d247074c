package core

// sort.go produces ordered views of a store.
//
// Every ordering is a full, stable sort of the record set. Equal sort keys
// are broken by state name ascending regardless of direction, and records
// without a state code always sort after those that have one, so repeated
// sorts of the same store produce byte-identical output.

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Field selects the record attribute an ordering sorts by.
type Field int

const (
	ByState Field = iota
	ByStateCode
	ByPopulation
	ByDensity
	ByArea
	ByHousingUnits
	ByTotalArea
	ByWaterArea
	ByLandArea
	ByHousingDensity
)

var fieldNames = map[Field]string{
	ByState:          "state",
	ByStateCode:      "stateCode",
	ByPopulation:     "population",
	ByDensity:        "density",
	ByArea:           "area",
	ByHousingUnits:   "housingUnits",
	ByTotalArea:      "totalArea",
	ByWaterArea:      "waterArea",
	ByLandArea:       "landArea",
	ByHousingDensity: "housingDensity",
}

// fieldAliases maps accepted spellings (lowercase) to fields.
var fieldAliases = map[string]Field{
	"populationdensity": ByDensity,
	"densitypersqkm":    ByDensity,
	"areainsqkm":        ByArea,
	"code":              ByStateCode,
	"housing":           ByHousingUnits,
}

// Fields returns every field in declaration order.
func Fields() []Field {
	return []Field{
		ByState, ByStateCode, ByPopulation, ByDensity, ByArea,
		ByHousingUnits, ByTotalArea, ByWaterArea, ByLandArea, ByHousingDensity,
	}
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Field) UnmarshalText(b []byte) error {
	v, err := ParseField(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseField converts a field name such as "population" or "housingDensity".
// Matching is case-insensitive.
func ParseField(s string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for f, name := range fieldNames {
		if strings.ToLower(name) == key {
			return f, nil
		}
	}
	if f, ok := fieldAliases[key]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("unknown sort field %q", s)
}

// USOnly reports whether the field exists only in the US schema.
func (f Field) USOnly() bool {
	switch f {
	case ByHousingUnits, ByTotalArea, ByWaterArea, ByLandArea, ByHousingDensity:
		return true
	}
	return false
}

// AvailableFor reports whether records of country carry the field.
func (f Field) AvailableFor(c Country) bool {
	return c == US || !f.USOnly()
}

// Direction is the sort order of an ordering.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDirection accepts asc/ascending and desc/descending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	}
	return Asc, fmt.Errorf("unknown sort direction %q", s)
}

// DefaultDirection returns the natural direction for f: names ascend,
// metrics descend.
func DefaultDirection(f Field) Direction {
	if f == ByState || f == ByStateCode {
		return Asc
	}
	return Desc
}

// Ordering describes one sorted view of a store.
type Ordering struct {
	Field     Field     `json:"field"`
	Direction Direction `json:"direction"`
}

// OrderBy returns the ordering for f in its default direction.
func OrderBy(f Field) Ordering {
	return Ordering{Field: f, Direction: DefaultDirection(f)}
}

// ParseOrdering builds an ordering from query values. An empty direction
// selects the field's default.
func ParseOrdering(field, dir string) (Ordering, error) {
	f, err := ParseField(field)
	if err != nil {
		return Ordering{}, err
	}
	if strings.TrimSpace(dir) == "" {
		return OrderBy(f), nil
	}
	d, err := ParseDirection(dir)
	if err != nil {
		return Ordering{}, err
	}
	return Ordering{Field: f, Direction: d}, nil
}

func (o Ordering) String() string {
	return o.Field.String() + ":" + o.Direction.String()
}

// check returns an unsupported-country error when c lacks the field.
func (o Ordering) check(c Country) error {
	if _, ok := fieldNames[o.Field]; !ok {
		return &Error{Kind: KindUnsupportedCountry, Op: "sort", Message: fmt.Sprintf("unknown field %s", o.Field)}
	}
	if !o.Field.AvailableFor(c) {
		return &Error{
			Kind:    KindUnsupportedCountry,
			Op:      "sort",
			Message: fmt.Sprintf("field %s is not available for %s", o.Field, c),
		}
	}
	return nil
}

// numericKey extracts the sort value of a metric field.
func numericKey(f Field, r Record) float64 {
	switch f {
	case ByPopulation:
		return float64(r.Population)
	case ByDensity:
		return r.Density()
	case ByArea:
		return r.Area()
	case ByHousingUnits:
		return float64(r.HousingUnits)
	case ByTotalArea:
		return r.TotalArea
	case ByWaterArea:
		return r.WaterArea
	case ByLandArea:
		return r.LandArea
	case ByHousingDensity:
		return r.HousingDensity
	}
	return 0
}

// Sort returns a sorted copy of records. The input slice is not modified.
func Sort(records []Record, o Ordering) []Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b Record) int {
		return compareRecords(a, b, o)
	})
	return out
}

func compareRecords(a, b Record, o Ordering) int {
	var c int
	switch o.Field {
	case ByState:
		c = cmp.Compare(a.State, b.State)
		if o.Direction == Desc {
			c = -c
		}
		return c
	case ByStateCode:
		if (a.StateCode == "") != (b.StateCode == "") {
			if a.StateCode == "" {
				return 1
			}
			return -1
		}
		c = cmp.Compare(a.StateCode, b.StateCode)
	default:
		c = cmp.Compare(numericKey(o.Field, a), numericKey(o.Field, b))
	}
	if o.Direction == Desc {
		c = -c
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.State, b.State)
}
