package core

import (
	"fmt"
	"sort"
	"sync"
)

// View is a named, persisted ordering of one country's store.
type View struct {
	Key      string   `json:"key"`
	Country  Country  `json:"country"`
	Ordering Ordering `json:"ordering"`
	FileName string   `json:"fileName"`
	Label    string   `json:"label"`
}

var (
	views   = make(map[string]View)
	viewsMu sync.RWMutex
)

// RegisterView adds a view to the catalogue.
// Panics if a view with the same key is already registered.
func RegisterView(v View) {
	viewsMu.Lock()
	defer viewsMu.Unlock()

	if _, exists := views[v.Key]; exists {
		panic(fmt.Sprintf("view already registered: %s", v.Key))
	}
	views[v.Key] = v
}

// ViewByKey returns a view by key.
// Returns false if not found.
func ViewByKey(key string) (View, bool) {
	viewsMu.RLock()
	defer viewsMu.RUnlock()

	v, ok := views[key]
	return v, ok
}

// Views returns all registered views.
// Sorted by country then by key for consistent ordering.
func Views() []View {
	viewsMu.RLock()
	defer viewsMu.RUnlock()

	result := make([]View, 0, len(views))
	for _, v := range views {
		result = append(result, v)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Country != result[j].Country {
			return result[i].Country < result[j].Country
		}
		return result[i].Key < result[j].Key
	})

	return result
}

// ViewsFor returns the views defined for country, sorted by key.
func ViewsFor(c Country) []View {
	var result []View
	for _, v := range Views() {
		if v.Country == c {
			result = append(result, v)
		}
	}
	return result
}

func init() {
	for _, v := range []View{
		{Key: "india-state", Country: India, Ordering: OrderBy(ByState), FileName: "stateWiseIndiaSorted.json", Label: "India states by name"},
		{Key: "india-statecode", Country: India, Ordering: OrderBy(ByStateCode), FileName: "statecodeIndia.json", Label: "India states by state code"},
		{Key: "india-density", Country: India, Ordering: OrderBy(ByDensity), FileName: "densityIndiaPopulation.json", Label: "India states by population density"},
		{Key: "india-area", Country: India, Ordering: OrderBy(ByArea), FileName: "IndiaCensusSortedAreaList.json", Label: "India states by area"},
		{Key: "us-population", Country: US, Ordering: OrderBy(ByPopulation), FileName: "USSortedPopultion.json", Label: "US states by population"},
		{Key: "us-density", Country: US, Ordering: OrderBy(ByDensity), FileName: "USSortedPopulationDensity.json", Label: "US states by population density"},
		{Key: "us-housing", Country: US, Ordering: OrderBy(ByHousingUnits), FileName: "HousingUnitWiseSortedUS.json", Label: "US states by housing units"},
		{Key: "us-total-area", Country: US, Ordering: OrderBy(ByTotalArea), FileName: "USSortedTotalArea.json", Label: "US states by total area"},
		{Key: "us-water-area", Country: US, Ordering: OrderBy(ByWaterArea), FileName: "USSortedWaterArea.json", Label: "US states by water area"},
		{Key: "us-housing-density", Country: US, Ordering: OrderBy(ByHousingDensity), FileName: "housingDensityUS.json", Label: "US states by housing density"},
	} {
		RegisterView(v)
	}
}
