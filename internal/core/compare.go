package core

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/census/internal/logging"
)

// Metric is an attribute both countries' records carry.
type Metric int

const (
	MetricPopulation Metric = iota
	MetricDensity
	MetricArea
)

func (m Metric) String() string {
	switch m {
	case MetricPopulation:
		return "population"
	case MetricDensity:
		return "density"
	case MetricArea:
		return "area"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Metric) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Metric) UnmarshalText(b []byte) error {
	v, err := ParseMetric(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMetric accepts population, density and area. Empty means population.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "population":
		return MetricPopulation, nil
	case "density", "populationdensity":
		return MetricDensity, nil
	case "area":
		return MetricArea, nil
	}
	return 0, fmt.Errorf("unknown compare metric %q", s)
}

func (m Metric) field() Field {
	switch m {
	case MetricDensity:
		return ByDensity
	case MetricArea:
		return ByArea
	default:
		return ByPopulation
	}
}

// CompareMode selects which fields are ranked on each side.
type CompareMode int

const (
	// ModeSameMetric ranks both countries by the chosen metric.
	ModeSameMetric CompareMode = iota
	// ModeLegacy ranks India by population density and the US by housing
	// density, ignoring the metric. The two values are not comparable; the
	// mode exists only to reproduce historical "most populous" results.
	ModeLegacy
)

func (m CompareMode) String() string {
	if m == ModeLegacy {
		return "legacy"
	}
	return "same-metric"
}

// MarshalText implements encoding.TextMarshaler.
func (m CompareMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *CompareMode) UnmarshalText(b []byte) error {
	v, err := ParseCompareMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseCompareMode accepts same-metric (or empty) and legacy.
func ParseCompareMode(s string) (CompareMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "same", "same-metric":
		return ModeSameMetric, nil
	case "legacy":
		return ModeLegacy, nil
	}
	return 0, fmt.Errorf("unknown compare mode %q", s)
}

// CompareOptions configures a cross-country comparison.
type CompareOptions struct {
	Metric Metric
	Mode   CompareMode
}

// fields returns the India and US ranking fields.
func (o CompareOptions) fields() (Field, Field) {
	if o.Mode == ModeLegacy {
		return ByDensity, ByHousingDensity
	}
	f := o.Metric.field()
	return f, f
}

// Leader is the top-ranked record of one country.
type Leader struct {
	Record Record  `json:"record"`
	Field  Field   `json:"field"`
	Value  float64 `json:"value"`
}

// Comparison is the outcome of ranking both countries.
type Comparison struct {
	Metric        Metric      `json:"metric"`
	Mode          CompareMode `json:"mode"`
	Winner        string      `json:"winner"`
	WinnerCountry Country     `json:"winnerCountry"`
	India         Leader      `json:"india"`
	US            Leader      `json:"us"`
}

// Compare loads both census files into private stores and returns the
// state whose top-ranked value is greater. The session's own store is not
// touched. On equal values India wins.
func (a *Analyser) Compare(ctx context.Context, indiaPath, usPath string, opts CompareOptions) (Comparison, error) {
	india, err := a.openSource(indiaPath)
	if err != nil {
		return Comparison{}, err
	}
	defer india.Close()

	us, err := a.openSource(usPath)
	if err != nil {
		return Comparison{}, err
	}
	defer us.Close()

	return a.CompareFrom(ctx, india, us, opts)
}

// CompareFrom is Compare for already-open sources.
func (a *Analyser) CompareFrom(ctx context.Context, india, us io.Reader, opts CompareOptions) (Comparison, error) {
	indiaField, usField := opts.fields()

	indiaTop, err := a.leader(ctx, India, india, indiaField)
	if err != nil {
		return Comparison{}, err
	}
	usTop, err := a.leader(ctx, US, us, usField)
	if err != nil {
		return Comparison{}, err
	}

	cmp := Comparison{
		Metric:        opts.Metric,
		Mode:          opts.Mode,
		Winner:        indiaTop.Record.State,
		WinnerCountry: India,
		India:         indiaTop,
		US:            usTop,
	}
	if usTop.Value > indiaTop.Value {
		cmp.Winner = usTop.Record.State
		cmp.WinnerCountry = US
	}

	logging.FromContext(ctx).Info("census compared",
		"mode", opts.Mode.String(),
		"metric", opts.Metric.String(),
		"india", indiaTop.Record.State,
		"us", usTop.Record.State,
		"winner", cmp.Winner,
	)
	return cmp, nil
}

// CompareMostPopulous returns the most populous state across both files.
func (a *Analyser) CompareMostPopulous(ctx context.Context, indiaPath, usPath string) (string, error) {
	cmp, err := a.Compare(ctx, indiaPath, usPath, CompareOptions{Metric: MetricPopulation})
	if err != nil {
		return "", err
	}
	return cmp.Winner, nil
}

func (a *Analyser) leader(ctx context.Context, c Country, r io.Reader, f Field) (Leader, error) {
	name := sourceName(r, strings.ToLower(c.String()))
	store, _, err := BuildStore(ctx, c, r, nil, BuildOptions{
		Encoding:    a.opts.Encoding,
		PrimaryName: name,
		Logger:      logging.WithFields(ctx, "country", c.String(), "source", name),
	})
	if err != nil {
		return Leader{}, err
	}
	if store.Len() == 0 {
		return Leader{}, emptyData("compare")
	}
	top := Sort(store.Records(), Ordering{Field: f, Direction: Desc})[0]
	return Leader{Record: top, Field: f, Value: numericKey(f, top)}, nil
}
