package core

import (
	"fmt"
	"iter"
)

// Column names as they appear in the census source headers.
const (
	colIndiaState          = "State"
	colIndiaPopulation     = "Population"
	colIndiaArea           = "AreaInSqKm"
	colIndiaDensity        = "DensityPerSqKm"
	colCodeSrNo            = "SrNo"
	colCodeStateName       = "State Name"
	colCodeTIN             = "TIN"
	colCodeStateCode       = "StateCode"
	colUSStateID           = "State Id"
	colUSState             = "State"
	colUSPopulation        = "Population"
	colUSHousingUnits      = "Housing units"
	colUSTotalArea         = "Total area"
	colUSWaterArea         = "Water area"
	colUSLandArea          = "Land area"
	colUSPopulationDensity = "Population Density"
	colUSHousingDensity    = "Housing Density"
)

// IndiaCensusSchema is the primary India dataset.
var IndiaCensusSchema = Schema{
	Name: "india census",
	Columns: []FieldSpec{
		{Name: colIndiaState, Type: FieldText, Required: true},
		{Name: colIndiaPopulation, Type: FieldInt, Required: true},
		{Name: colIndiaArea, Type: FieldInt, Required: true},
		{Name: colIndiaDensity, Type: FieldInt, Required: true},
	},
}

// IndiaStateCodeSchema is the secondary India dataset used for enrichment.
var IndiaStateCodeSchema = Schema{
	Name: "india state code",
	Columns: []FieldSpec{
		{Name: colCodeSrNo, Type: FieldInt, Required: true},
		{Name: colCodeStateName, Type: FieldText, Required: true},
		{Name: colCodeTIN, Type: FieldInt, Required: true},
		{Name: colCodeStateCode, Type: FieldText, Required: true},
	},
}

// USCensusSchema is the primary US dataset. Land area and the two density
// columns are optional; older exports carry only the first six columns.
var USCensusSchema = Schema{
	Name: "us census",
	Columns: []FieldSpec{
		{Name: colUSStateID, Type: FieldText, Required: true},
		{Name: colUSState, Type: FieldText, Required: true},
		{Name: colUSPopulation, Type: FieldInt, Required: true},
		{Name: colUSHousingUnits, Type: FieldInt, Required: true},
		{Name: colUSTotalArea, Type: FieldFloat, Required: true},
		{Name: colUSWaterArea, Type: FieldFloat, Required: true},
		{Name: colUSLandArea, Type: FieldFloat},
		{Name: colUSPopulationDensity, Type: FieldFloat},
		{Name: colUSHousingDensity, Type: FieldFloat},
	},
}

// adapter maps decoded rows of one country's primary schema to records.
type adapter struct {
	country  Country
	schema   Schema
	toRecord func(Row) (Record, error)
}

var adapters = map[Country]adapter{
	India: {country: India, schema: IndiaCensusSchema, toRecord: indiaRecord},
	US:    {country: US, schema: USCensusSchema, toRecord: usRecord},
}

// record maps row to a record and rejects rows without a state name.
// source names the input in the error.
func (a adapter) record(row Row, source string) (Record, error) {
	rec, err := a.toRecord(row)
	if err != nil {
		return Record{}, err
	}
	if rec.State == "" {
		msg := fmt.Sprintf("line %d: empty state name", row.Line())
		return Record{}, decodeError("decode", source, msg, nil)
	}
	return rec, nil
}

// adapterFor selects the adapter for country.
func adapterFor(c Country) (adapter, error) {
	a, ok := adapters[c]
	if !ok {
		return adapter{}, unsupportedCountry("select schema", c.String())
	}
	return a, nil
}

// SchemaFor returns the primary schema for country.
func SchemaFor(c Country) (Schema, error) {
	a, err := adapterFor(c)
	if err != nil {
		return Schema{}, err
	}
	return a.schema, nil
}

func indiaRecord(row Row) (Record, error) {
	rec := Record{State: row.Text(colIndiaState), country: India}
	var err error
	if rec.Population, err = row.Int(colIndiaPopulation); err != nil {
		return Record{}, err
	}
	if rec.AreaInSqKm, err = row.Int(colIndiaArea); err != nil {
		return Record{}, err
	}
	if rec.DensityPerSqKm, err = row.Int(colIndiaDensity); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func usRecord(row Row) (Record, error) {
	rec := Record{
		State:     row.Text(colUSState),
		StateCode: row.Text(colUSStateID),
		country:   US,
	}
	var err error
	if rec.Population, err = row.Int(colUSPopulation); err != nil {
		return Record{}, err
	}
	if rec.HousingUnits, err = row.Int(colUSHousingUnits); err != nil {
		return Record{}, err
	}
	floats := []struct {
		column string
		dst    *float64
	}{
		{colUSTotalArea, &rec.TotalArea},
		{colUSWaterArea, &rec.WaterArea},
		{colUSLandArea, &rec.LandArea},
		{colUSPopulationDensity, &rec.PopulationDensity},
		{colUSHousingDensity, &rec.HousingDensity},
	}
	for _, f := range floats {
		if *f.dst, err = row.Float(f.column); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

// CodeEntry is one decoded entry of the state-code dataset.
type CodeEntry struct {
	State string
	Code  string
}

// CodeEntries decodes a state-code dataset lazily.
func CodeEntries(dec *Decoder) iter.Seq2[CodeEntry, error] {
	return func(yield func(CodeEntry, error) bool) {
		for row, err := range dec.Rows() {
			if err != nil {
				yield(CodeEntry{}, err)
				return
			}
			sc := CodeEntry{State: row.Text(colCodeStateName), Code: row.Text(colCodeStateCode)}
			if !yield(sc, nil) {
				return
			}
		}
	}
}
