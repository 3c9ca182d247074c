package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/census/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdata = "../../internal/core/testdata"

func fixture(name string) string {
	return filepath.Join(testdata, name)
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CENSUS_INDIA_PATH", fixture("IndiaStateCensusData.csv"))
	t.Setenv("CENSUS_INDIA_STATE_CODE_PATH", fixture("IndiaStateCode.csv"))
	t.Setenv("CENSUS_US_PATH", fixture("USCensusData.csv"))
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestLoadCmd(t *testing.T) {
	out, err := run(t, "load", "india")
	require.NoError(t, err)
	assert.Contains(t, out, "Records:  29")
	assert.Contains(t, out, "28 matched")

	out, err = run(t, "load", "india", "--no-codes")
	require.NoError(t, err)
	assert.NotContains(t, out, "Codes:")
}

func TestLoadCmd_Errors(t *testing.T) {
	_, err := run(t, "load", "mars")
	assert.ErrorIs(t, err, core.ErrUnsupportedCountry)

	_, err = run(t, "load", "us", "--codes", fixture("IndiaStateCode.csv"))
	assert.ErrorIs(t, err, core.ErrUnsupportedCountry)

	_, err = run(t, "load", "india", "--file", fixture("WrongDelimiterStateCensus.csv"))
	assert.ErrorIs(t, err, core.ErrDecode)

	_, err = run(t, "load", "india", "--file", fixture("IndiaStateCensusData.txt"))
	assert.ErrorIs(t, err, core.ErrFileAccess)

	_, err = run(t, "load", "india", "--allow-any-ext", "--no-codes", "--file", fixture("IndiaStateCensusData.txt"))
	assert.NoError(t, err)
}

func TestSortCmd(t *testing.T) {
	out, err := run(t, "sort", "us", "--field", "waterArea", "--dir", "asc")
	require.NoError(t, err)

	var records []core.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 51)
	for i := 1; i < len(records); i++ {
		assert.LessOrEqual(t, records[i-1].WaterArea, records[i].WaterArea)
	}

	out, err = run(t, "sort", "india", "--field", "stateCode", "--table")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 30)
	assert.Contains(t, lines[1], "Andhra Pradesh")
	assert.Contains(t, lines[29], "Chhattisgarh")

	_, err = run(t, "sort", "india", "--field", "housingUnits")
	assert.ErrorIs(t, err, core.ErrUnsupportedCountry)
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "export", "india", "--export-dir", dir)
	require.NoError(t, err)
	for _, v := range core.ViewsFor(core.India) {
		assert.FileExists(t, filepath.Join(dir, v.FileName))
		assert.Contains(t, out, v.Key)
	}

	custom := filepath.Join(dir, "nested", "density.json")
	_, err = run(t, "export", "india", "--field", "density", "--dir", "asc", "--out", custom)
	require.NoError(t, err)
	data, err := os.ReadFile(custom)
	require.NoError(t, err)
	var records []core.Record
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Equal(t, "Arunachal Pradesh", records[0].State)

	_, err = run(t, "export", "us", "--export-dir", dir, "--view", "india-state")
	assert.ErrorIs(t, err, core.ErrUnsupportedCountry)
}

func TestViewsCmd(t *testing.T) {
	out, err := run(t, "views", "--country", "us")
	require.NoError(t, err)
	assert.Contains(t, out, "us-housing-density")
	assert.NotContains(t, out, "india-state")
}

func TestCompareCmd(t *testing.T) {
	out, err := run(t, "compare")
	require.NoError(t, err)
	assert.Contains(t, out, "Winner: Uttar Pradesh, INDIA")

	out, err = run(t, "compare", "--legacy")
	require.NoError(t, err)
	assert.Contains(t, out, "Winner: District of Columbia, US")

	out, err = run(t, "compare", "--metric", "area", "--json")
	require.NoError(t, err)
	var result core.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Alaska", result.Winner)
}

func TestPreviewCmd(t *testing.T) {
	out, err := run(t, "preview", "india")
	require.NoError(t, err)
	var resp core.PreviewResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 29, resp.Summary.TotalRows)
}
