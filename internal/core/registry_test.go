package core

import (
	"testing"
)

func TestViews(t *testing.T) {
	views := Views()
	if len(views) != 10 {
		t.Fatalf("Views() returned %d views, want 10", len(views))
	}

	seenFiles := make(map[string]bool)
	for i, v := range views {
		if i > 0 {
			prev := views[i-1]
			if prev.Country > v.Country || (prev.Country == v.Country && prev.Key >= v.Key) {
				t.Errorf("views not sorted at %d: %s before %s", i, prev.Key, v.Key)
			}
		}
		if !v.Ordering.Field.AvailableFor(v.Country) {
			t.Errorf("view %s sorts by %s which %s lacks", v.Key, v.Ordering.Field, v.Country)
		}
		if seenFiles[v.FileName] {
			t.Errorf("duplicate file name %s", v.FileName)
		}
		seenFiles[v.FileName] = true
	}
}

func TestViewByKey(t *testing.T) {
	tests := []struct {
		key      string
		fileName string
		ordering Ordering
	}{
		{"india-state", "stateWiseIndiaSorted.json", Ordering{ByState, Asc}},
		{"india-statecode", "statecodeIndia.json", Ordering{ByStateCode, Asc}},
		{"india-density", "densityIndiaPopulation.json", Ordering{ByDensity, Desc}},
		{"india-area", "IndiaCensusSortedAreaList.json", Ordering{ByArea, Desc}},
		{"us-population", "USSortedPopultion.json", Ordering{ByPopulation, Desc}},
		{"us-housing-density", "housingDensityUS.json", Ordering{ByHousingDensity, Desc}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, ok := ViewByKey(tt.key)
			if !ok {
				t.Fatalf("ViewByKey(%q) not found", tt.key)
			}
			if v.FileName != tt.fileName {
				t.Errorf("FileName = %q, want %q", v.FileName, tt.fileName)
			}
			if v.Ordering != tt.ordering {
				t.Errorf("Ordering = %v, want %v", v.Ordering, tt.ordering)
			}
		})
	}

	if _, ok := ViewByKey("nope"); ok {
		t.Error("ViewByKey(nope) should not be found")
	}
	if got := len(ViewsFor(India)); got != 4 {
		t.Errorf("ViewsFor(India) = %d views, want 4", got)
	}
}

func TestRegisterViewDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate key")
		}
	}()
	RegisterView(View{Key: "india-state"})
}
