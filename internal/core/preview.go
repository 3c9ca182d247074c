package core

import (
	"context"
	"io"
	"time"
)

// PreviewSummary contains the counts of a dry-run decode.
type PreviewSummary struct {
	TotalRows       int `json:"totalRows"`
	UniqueStates    int `json:"uniqueStates"`
	DuplicateInFile int `json:"duplicateInFile"`
}

// DuplicatePreview lists a state that appears on more than one line.
// The last line wins when the file is loaded.
type DuplicatePreview struct {
	State       string `json:"state"`
	LineNumbers []int  `json:"lineNumbers"`
}

// PreviewResponse is the result of decoding a source without loading it.
type PreviewResponse struct {
	Country          Country            `json:"country"`
	Columns          []string           `json:"columns"`
	Summary          PreviewSummary     `json:"summary"`
	Samples          []Record           `json:"samples"`
	DuplicateSamples []DuplicatePreview `json:"duplicateSamples"`
	ProcessingTimeMs int64              `json:"processingTimeMs"`
}

// Sample limits
const (
	maxRecordSamples    = 10
	maxDuplicateSamples = 10
)

// Preview decodes r with the adapter for country and reports what a load
// would produce. The session store is not changed. Any decode error that
// would fail the load fails the preview.
func (a *Analyser) Preview(ctx context.Context, c Country, name string, r io.Reader) (*PreviewResponse, error) {
	start := time.Now()

	ad, err := adapterFor(c)
	if err != nil {
		return nil, err
	}
	dec, err := NewDecoder(r, ad.schema, DecodeOptions{Encoding: a.opts.Encoding, Source: name})
	if err != nil {
		return nil, err
	}

	resp := &PreviewResponse{
		Country: c,
		Columns: ad.schema.ColumnNames(),
		Samples: []Record{},
	}
	lines := make(map[string][]int)
	var order []string

	for row, err := range dec.Rows() {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := ad.record(row, name)
		if err != nil {
			return nil, err
		}
		resp.Summary.TotalRows++
		if _, seen := lines[rec.State]; !seen {
			order = append(order, rec.State)
		}
		lines[rec.State] = append(lines[rec.State], row.Line())
		if len(resp.Samples) < maxRecordSamples {
			resp.Samples = append(resp.Samples, rec)
		}
	}

	resp.Summary.UniqueStates = len(lines)
	resp.DuplicateSamples = []DuplicatePreview{}
	for _, state := range order {
		if len(lines[state]) < 2 {
			continue
		}
		resp.Summary.DuplicateInFile++
		if len(resp.DuplicateSamples) < maxDuplicateSamples {
			resp.DuplicateSamples = append(resp.DuplicateSamples, DuplicatePreview{
				State:       state,
				LineNumbers: lines[state],
			})
		}
	}

	resp.ProcessingTimeMs = time.Since(start).Milliseconds()
	return resp, nil
}
