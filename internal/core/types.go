package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Country identifies which census schema a dataset follows.
type Country int

const (
	CountryUnknown Country = iota
	India
	US
)

// String returns the canonical tag used in logs, URLs and JSON.
func (c Country) String() string {
	switch c {
	case India:
		return "INDIA"
	case US:
		return "US"
	default:
		return fmt.Sprintf("Country(%d)", int(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Country) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Country) UnmarshalText(b []byte) error {
	v, err := ParseCountry(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCountry converts a tag such as "india", "IN", "us" or "usa" to a Country.
func ParseCountry(s string) (Country, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "india", "in", "ind":
		return India, nil
	case "us", "usa", "united states":
		return US, nil
	}
	return CountryUnknown, unsupportedCountry("parse country", s)
}

// Record is the unified census entity shared by both countries.
//
// India rows fill AreaInSqKm and DensityPerSqKm; US rows fill the floating
// point area and density fields plus the housing metrics. Fields belonging to
// the other country's schema stay at their zero value.
type Record struct {
	State      string `json:"state"`
	StateCode  string `json:"stateCode,omitempty"`
	Population int64  `json:"population"`

	// India
	AreaInSqKm     int64 `json:"areaInSqKm"`
	DensityPerSqKm int64 `json:"densityPerSqKm"`

	// US
	HousingUnits      int64   `json:"housingUnits"`
	TotalArea         float64 `json:"totalArea"`
	WaterArea         float64 `json:"waterArea"`
	LandArea          float64 `json:"landArea"`
	PopulationDensity float64 `json:"populationDensity"`
	HousingDensity    float64 `json:"housingDensity"`

	country Country
}

type indiaRecordJSON struct {
	State          string `json:"state"`
	StateCode      string `json:"stateCode,omitempty"`
	Population     int64  `json:"population"`
	AreaInSqKm     int64  `json:"areaInSqKm"`
	DensityPerSqKm int64  `json:"densityPerSqKm"`
}

type usRecordJSON struct {
	State             string  `json:"state"`
	StateCode         string  `json:"stateCode,omitempty"`
	Population        int64   `json:"population"`
	HousingUnits      int64   `json:"housingUnits"`
	TotalArea         float64 `json:"totalArea"`
	WaterArea         float64 `json:"waterArea"`
	LandArea          float64 `json:"landArea"`
	PopulationDensity float64 `json:"populationDensity"`
	HousingDensity    float64 `json:"housingDensity"`
}

// MarshalJSON writes every field of the record's own schema, zero values
// included, and leaves out the other country's fields. A record with no
// country writes all fields.
func (r Record) MarshalJSON() ([]byte, error) {
	switch r.country {
	case India:
		return json.Marshal(indiaRecordJSON{
			State:          r.State,
			StateCode:      r.StateCode,
			Population:     r.Population,
			AreaInSqKm:     r.AreaInSqKm,
			DensityPerSqKm: r.DensityPerSqKm,
		})
	case US:
		return json.Marshal(usRecordJSON{
			State:             r.State,
			StateCode:         r.StateCode,
			Population:        r.Population,
			HousingUnits:      r.HousingUnits,
			TotalArea:         r.TotalArea,
			WaterArea:         r.WaterArea,
			LandArea:          r.LandArea,
			PopulationDensity: r.PopulationDensity,
			HousingDensity:    r.HousingDensity,
		})
	}
	type plain Record
	return json.Marshal(plain(r))
}

// Country reports which schema produced the record.
func (r Record) Country() Country {
	return r.country
}

// Area returns the record's total area regardless of source schema.
func (r Record) Area() float64 {
	if r.country == US {
		return r.TotalArea
	}
	return float64(r.AreaInSqKm)
}

// Density returns the record's population density regardless of source schema.
func (r Record) Density() float64 {
	if r.country == US {
		return r.PopulationDensity
	}
	return float64(r.DensityPerSqKm)
}

// FieldType represents the expected data type for a CSV column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInt
	FieldFloat
)

// FieldSpec describes a single CSV column of a schema.
type FieldSpec struct {
	Name     string    // Column header name (matched case-insensitively)
	Type     FieldType // Expected data type
	Required bool      // Column must exist in the CSV header
}

// Schema is the column layout a decoder validates a CSV header against.
type Schema struct {
	Name    string
	Columns []FieldSpec
}

// ColumnNames returns the header names in declaration order.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// LoadResult describes a completed primary load (and optional enrichment).
type LoadResult struct {
	ID         string        `json:"loadId"`
	Country    Country       `json:"country"`
	Records    int           `json:"records"`
	Enriched   int           `json:"enriched"`
	Source     string        `json:"source"`
	StateCodes string        `json:"stateCodes,omitempty"`
	LoadedAt   time.Time     `json:"loadedAt"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"durationMs"`
}

// Status is a snapshot of an analyser session.
type Status struct {
	Loaded bool        `json:"loaded"`
	Last   *LoadResult `json:"last,omitempty"`
}
