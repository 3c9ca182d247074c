package core

import (
	"errors"
	"strings"
	"testing"
)

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Goa", "Goa"},
		{"surrounding spaces", "  Goa  ", "Goa"},
		{"excel formula", `="199812341"`, "199812341"},
		{"bare formula prefix", "=42", "42"},
		{"double quotes", `"Goa"`, "Goa"},
		{"single quotes", "'Goa'", "Goa"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMakeHeaderIndex(t *testing.T) {
	idx := MakeHeaderIndex([]string{"State", " Population ", "AreaInSqKm"})

	tests := map[string]int{"state": 0, "population": 1, "areainsqkm": 2}
	for key, want := range tests {
		if got, ok := idx[key]; !ok || got != want {
			t.Errorf("idx[%q] = %d, %v; want %d", key, got, ok, want)
		}
	}
	if _, ok := idx["State"]; ok {
		t.Error("keys should be lowercased")
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"199812341", 199812341, false},
		{"199,812,341", 199812341, false},
		{" 607688 ", 607688, false},
		{`="607688"`, 607688, false},
		{"1_000", 1000, false},
		{"12.0", 12, false},
		{"12.", 12, false},
		{"+5", 5, false},
		{"0", 0, false},
		{"12.5", 0, true},
		{"-5", 0, true},
		{"", 0, true},
		{"not-a-number", 0, true},
		{"1e3", 0, true},
		{"99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMeasure(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"1723338.01", 1723338.01, false},
		{"1,723,338.01", 1723338.01, false},
		{"0.48", 0.48, false},
		{".5", 0.5, false},
		{"1e3", 1000, false},
		{"42", 42, false},
		{"-0.5", 0, true},
		{"", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMeasure(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMeasure(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMeasure(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateHeaders(t *testing.T) {
	tests := []struct {
		name        string
		headers     []string
		wantErr     bool
		wantMissing []string
		wantUnknown []string
	}{
		{
			name:    "exact header",
			headers: []string{"State", "Population", "AreaInSqKm", "DensityPerSqKm"},
		},
		{
			name:    "reordered and different case",
			headers: []string{"densitypersqkm", "STATE", "AreaInSqKm", "Population"},
		},
		{
			name:        "renamed columns",
			headers:     []string{"State", "Populous", "Area", "Density"},
			wantErr:     true,
			wantMissing: []string{"Population", "AreaInSqKm", "DensityPerSqKm"},
			wantUnknown: []string{"Populous", "Area", "Density"},
		},
		{
			name:        "wrong delimiter collapses to one cell",
			headers:     []string{"State;Population;AreaInSqKm;DensityPerSqKm"},
			wantErr:     true,
			wantMissing: []string{"State", "Population", "AreaInSqKm", "DensityPerSqKm"},
			wantUnknown: []string{"State;Population;AreaInSqKm;DensityPerSqKm"},
		},
		{
			name:        "extra column",
			headers:     []string{"State", "Population", "AreaInSqKm", "DensityPerSqKm", "Capital"},
			wantErr:     true,
			wantUnknown: []string{"Capital"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := ValidateHeaders(tt.headers, IndiaCensusSchema)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateHeaders() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if len(idx) != len(tt.headers) {
					t.Errorf("index has %d entries, want %d", len(idx), len(tt.headers))
				}
				return
			}

			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %T is not a ValidationError", err)
			}
			if strings.Join(ve.Missing, ",") != strings.Join(tt.wantMissing, ",") {
				t.Errorf("Missing = %v, want %v", ve.Missing, tt.wantMissing)
			}
			if strings.Join(ve.Unknown, ",") != strings.Join(tt.wantUnknown, ",") {
				t.Errorf("Unknown = %v, want %v", ve.Unknown, tt.wantUnknown)
			}
		})
	}
}

func TestValidateHeaders_OptionalColumns(t *testing.T) {
	headers := []string{"State Id", "State", "Population", "Housing units", "Total area", "Water area"}
	if _, err := ValidateHeaders(headers, USCensusSchema); err != nil {
		t.Errorf("six-column US header rejected: %v", err)
	}
}
