package core

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	indiaCensusPath    = "testdata/IndiaStateCensusData.csv"
	indiaStateCodePath = "testdata/IndiaStateCode.csv"
	usCensusPath       = "testdata/USCensusData.csv"
)

func openFixture(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// loadFixtureStore builds the unenriched store for country from testdata.
func loadFixtureStore(t *testing.T, c Country) *Store {
	t.Helper()
	path := indiaCensusPath
	if c == US {
		path = usCensusPath
	}
	store, _, err := BuildStore(context.Background(), c, openFixture(t, path), nil, BuildOptions{PrimaryName: path})
	require.NoError(t, err)
	return store
}

func TestBuildStore_India(t *testing.T) {
	store := loadFixtureStore(t, India)

	assert.Equal(t, 29, store.Len())
	assert.Equal(t, India, store.Country())

	up, ok := store.Get("Uttar Pradesh")
	require.True(t, ok)
	assert.Equal(t, int64(199812341), up.Population)
	assert.Equal(t, int64(240928), up.AreaInSqKm)
	assert.Equal(t, int64(828), up.DensityPerSqKm)
	assert.Empty(t, up.StateCode)
	assert.Zero(t, up.HousingUnits)
	assert.Equal(t, India, up.Country())
}

func TestBuildStore_US(t *testing.T) {
	store := loadFixtureStore(t, US)

	assert.Equal(t, 51, store.Len())

	ak, ok := store.Get("Alaska")
	require.True(t, ok)
	assert.Equal(t, "AK", ak.StateCode)
	assert.Equal(t, int64(710231), ak.Population)
	assert.Equal(t, int64(306967), ak.HousingUnits)
	assert.InDelta(t, 1723338.01, ak.TotalArea, 1e-9)
	assert.InDelta(t, 245383.68, ak.WaterArea, 1e-9)
	assert.InDelta(t, 1477954.33, ak.LandArea, 1e-9)
	assert.InDelta(t, 0.48, ak.PopulationDensity, 1e-9)
	assert.InDelta(t, 0.21, ak.HousingDensity, 1e-9)
	assert.Zero(t, ak.AreaInSqKm)
	assert.InDelta(t, ak.TotalArea, ak.Area(), 1e-9)
	assert.InDelta(t, ak.PopulationDensity, ak.Density(), 1e-9)
}

func TestBuildStore_Enrich(t *testing.T) {
	bare := loadFixtureStore(t, India)

	store, matched, err := BuildStore(context.Background(), India,
		openFixture(t, indiaCensusPath), openFixture(t, indiaStateCodePath), BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, 28, matched)
	assert.Equal(t, bare.Keys(), store.Keys(), "enrichment must not change the key set")

	for _, rec := range store.Records() {
		before, _ := bare.Get(rec.State)
		expected := before
		expected.StateCode = rec.StateCode
		assert.Equal(t, expected, rec, "only stateCode may change for %s", rec.State)
	}

	ap, _ := store.Get("Andhra Pradesh")
	assert.Equal(t, "AP", ap.StateCode)
	cg, _ := store.Get("Chhattisgarh")
	assert.Empty(t, cg.StateCode, "no exact name match in the code file")
}

func TestStore_PutLastWriteWins(t *testing.T) {
	store := NewStore(India)
	store.Put(Record{State: "Goa", Population: 1})
	store.Put(Record{State: "Goa", Population: 2})

	assert.Equal(t, 1, store.Len())
	rec, _ := store.Get("Goa")
	assert.Equal(t, int64(2), rec.Population)
	assert.Equal(t, India, rec.Country())
}

func TestStore_RecordsAreCopies(t *testing.T) {
	store := NewStore(India)
	store.Put(Record{State: "Goa", Population: 1})

	recs := store.Records()
	recs[0].Population = 99

	rec, _ := store.Get("Goa")
	assert.Equal(t, int64(1), rec.Population)
}

func TestStore_EnrichSkipsUnknownStates(t *testing.T) {
	store := NewStore(India)
	store.Put(Record{State: "Goa"})

	codes := func(yield func(CodeEntry, error) bool) {
		for _, e := range []CodeEntry{{"Goa", "GA"}, {"Atlantis", "AT"}} {
			if !yield(e, nil) {
				return
			}
		}
	}
	matched, err := store.Enrich(codes)
	require.NoError(t, err)
	assert.Equal(t, 1, matched)
	assert.Equal(t, []string{"Goa"}, store.Keys())
}

func TestStore_EnrichCountsDistinctStates(t *testing.T) {
	store := NewStore(India)
	store.Put(Record{State: "Goa"})
	store.Put(Record{State: "Kerala"})

	codes := func(yield func(CodeEntry, error) bool) {
		for _, e := range []CodeEntry{{"Goa", "GO"}, {"Goa", "GA"}, {"Kerala", "KL"}} {
			if !yield(e, nil) {
				return
			}
		}
	}
	matched, err := store.Enrich(codes)
	require.NoError(t, err)
	assert.Equal(t, 2, matched)

	goa, _ := store.Get("Goa")
	assert.Equal(t, "GA", goa.StateCode, "later entries win")
}

func TestBuildStore_Errors(t *testing.T) {
	tests := []struct {
		name      string
		country   Country
		primary   string
		secondary string
		kind      Kind
	}{
		{"wrong delimiter", India, "testdata/WrongDelimiterStateCensus.csv", "", KindDecode},
		{"wrong header", India, "testdata/WrongHeader.csv", "", KindDecode},
		{"bad number", India, "testdata/BadNumber.csv", "", KindDecode},
		{"us file as india", India, usCensusPath, "", KindDecode},
		{"india file as us", US, indiaCensusPath, "", KindDecode},
		{"state code delimiter", India, indiaCensusPath, "testdata/WrongStateCodeDelimiter.csv", KindDecode},
		{"state code header", India, indiaCensusPath, "testdata/WrongStateCodeHeader.csv", KindDecode},
		{"codes for us", US, usCensusPath, indiaStateCodePath, KindUnsupportedCountry},
		{"unknown country", Country(42), indiaCensusPath, "", KindUnsupportedCountry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var secondary io.Reader
			if tt.secondary != "" {
				secondary = openFixture(t, tt.secondary)
			}
			_, _, err := BuildStore(context.Background(), tt.country, openFixture(t, tt.primary), secondary, BuildOptions{})
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err), err.Error())
		})
	}
}

func TestBuildStore_EmptyStateName(t *testing.T) {
	input := "State,Population,AreaInSqKm,DensityPerSqKm\n,100,10,10\n"
	_, _, err := BuildStore(context.Background(), India, strings.NewReader(input), nil, BuildOptions{})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestBuildStore_HeaderOnly(t *testing.T) {
	input := "State,Population,AreaInSqKm,DensityPerSqKm\n"
	store, _, err := BuildStore(context.Background(), India, strings.NewReader(input), nil, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestBuildStore_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := BuildStore(ctx, India, openFixture(t, indiaCensusPath), nil, BuildOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
