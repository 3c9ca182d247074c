package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name        string
		opts        CompareOptions
		winner      string
		country     Country
		indiaLeader string
		usLeader    string
	}{
		{
			name:        "population",
			opts:        CompareOptions{Metric: MetricPopulation},
			winner:      "Uttar Pradesh",
			country:     India,
			indiaLeader: "Uttar Pradesh",
			usLeader:    "California",
		},
		{
			name:        "density",
			opts:        CompareOptions{Metric: MetricDensity},
			winner:      "District of Columbia",
			country:     US,
			indiaLeader: "Bihar",
			usLeader:    "District of Columbia",
		},
		{
			name:        "area",
			opts:        CompareOptions{Metric: MetricArea},
			winner:      "Alaska",
			country:     US,
			indiaLeader: "Rajasthan",
			usLeader:    "Alaska",
		},
		{
			name:        "legacy ignores metric",
			opts:        CompareOptions{Metric: MetricPopulation, Mode: ModeLegacy},
			winner:      "District of Columbia",
			country:     US,
			indiaLeader: "Bihar",
			usLeader:    "District of Columbia",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyser(t)
			cmp, err := a.Compare(context.Background(), indiaCensusPath, usCensusPath, tt.opts)
			require.NoError(t, err)

			assert.Equal(t, tt.winner, cmp.Winner)
			assert.Equal(t, tt.country, cmp.WinnerCountry)
			assert.Equal(t, tt.indiaLeader, cmp.India.Record.State)
			assert.Equal(t, tt.usLeader, cmp.US.Record.State)
		})
	}
}

func TestCompare_LegacyFields(t *testing.T) {
	a := newTestAnalyser(t)
	cmp, err := a.Compare(context.Background(), indiaCensusPath, usCensusPath, CompareOptions{Mode: ModeLegacy})
	require.NoError(t, err)

	assert.Equal(t, ByDensity, cmp.India.Field)
	assert.Equal(t, ByHousingDensity, cmp.US.Field)
	assert.InDelta(t, 1102, cmp.India.Value, 1e-9)
	assert.InDelta(t, 1876.54, cmp.US.Value, 1e-9)
}

func TestCompareMostPopulous(t *testing.T) {
	a := newTestAnalyser(t)
	winner, err := a.CompareMostPopulous(context.Background(), indiaCensusPath, usCensusPath)
	require.NoError(t, err)
	assert.Equal(t, "Uttar Pradesh", winner)
}

func TestCompare_DoesNotTouchSession(t *testing.T) {
	a := newTestAnalyser(t)
	_, err := a.LoadCensusData(context.Background(), US, usCensusPath)
	require.NoError(t, err)
	before := a.Status().Last.ID

	_, err = a.Compare(context.Background(), indiaCensusPath, usCensusPath, CompareOptions{})
	require.NoError(t, err)

	assert.Equal(t, before, a.Status().Last.ID)
	assert.Equal(t, US, a.Status().Last.Country)
}

func TestCompare_Errors(t *testing.T) {
	header := "State,Population,AreaInSqKm,DensityPerSqKm\n"

	t.Run("missing india file", func(t *testing.T) {
		a := newTestAnalyser(t)
		_, err := a.Compare(context.Background(), "testdata/nope.csv", usCensusPath, CompareOptions{})
		assert.ErrorIs(t, err, ErrFileAccess)
	})
	t.Run("files swapped", func(t *testing.T) {
		a := newTestAnalyser(t)
		_, err := a.Compare(context.Background(), usCensusPath, indiaCensusPath, CompareOptions{})
		assert.ErrorIs(t, err, ErrDecode)
	})
	t.Run("empty india data", func(t *testing.T) {
		a := newTestAnalyser(t)
		_, err := a.CompareFrom(context.Background(), strings.NewReader(header), openFixture(t, usCensusPath), CompareOptions{})
		assert.ErrorIs(t, err, ErrEmptyData)
	})
}

func TestParseMetricAndMode(t *testing.T) {
	m, err := ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, MetricPopulation, m)

	m, err = ParseMetric("Density")
	require.NoError(t, err)
	assert.Equal(t, MetricDensity, m)

	_, err = ParseMetric("housing")
	assert.Error(t, err)

	mode, err := ParseCompareMode("legacy")
	require.NoError(t, err)
	assert.Equal(t, ModeLegacy, mode)

	mode, err = ParseCompareMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSameMetric, mode)
}
