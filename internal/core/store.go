package core

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"slices"
)

// Store is the state-keyed record set produced by one primary load.
// A Store is not safe for concurrent mutation; the Analyser owns the lock.
type Store struct {
	country Country
	records map[string]*Record
}

// NewStore returns an empty store for country.
func NewStore(c Country) *Store {
	return &Store{country: c, records: make(map[string]*Record)}
}

// Country returns the schema the store was built from.
func (s *Store) Country() Country {
	return s.country
}

// Put inserts rec keyed by its state name. A duplicate state replaces the
// earlier record.
func (s *Store) Put(rec Record) {
	rec.country = s.country
	s.records[rec.State] = &rec
}

// Len returns the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Keys returns the state names in ascending order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get returns a copy of the record for state.
func (s *Store) Get(state string) (Record, bool) {
	rec, ok := s.records[state]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Records returns copies of every record in state order.
func (s *Store) Records() []Record {
	out := make([]Record, 0, len(s.records))
	for _, k := range s.Keys() {
		out = append(out, *s.records[k])
	}
	return out
}

// Enrich sets StateCode on every record whose state appears in codes.
// Entries for unknown states are skipped. The key set never changes.
// Returns the number of records updated.
func (s *Store) Enrich(codes iter.Seq2[CodeEntry, error]) (int, error) {
	matched := make(map[string]struct{})
	for entry, err := range codes {
		if err != nil {
			return len(matched), err
		}
		rec, ok := s.records[entry.State]
		if !ok {
			continue
		}
		rec.StateCode = entry.Code
		matched[entry.State] = struct{}{}
	}
	return len(matched), nil
}

// BuildOptions configures BuildStore.
// Encoding applies to both sources. The names appear in errors and logs.
type BuildOptions struct {
	Encoding      string
	PrimaryName   string
	SecondaryName string
	Logger        *slog.Logger
}

// BuildStore decodes primary with the adapter for country and, when
// secondary is non-nil, enriches the result with state codes. Secondary
// sources are only accepted for India.
//
// Returns the new store and the number of enriched records.
func BuildStore(ctx context.Context, c Country, primary, secondary io.Reader, opts BuildOptions) (*Store, int, error) {
	a, err := adapterFor(c)
	if err != nil {
		return nil, 0, err
	}
	if secondary != nil && c != India {
		return nil, 0, unsupportedCountry("enrich", c.String())
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dec, err := NewDecoder(primary, a.schema, DecodeOptions{Encoding: opts.Encoding, Source: opts.PrimaryName})
	if err != nil {
		return nil, 0, err
	}

	store := NewStore(c)
	rows := 0
	for row, err := range dec.Rows() {
		if err != nil {
			return nil, 0, err
		}
		if rows%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}
		rec, err := a.record(row, opts.PrimaryName)
		if err != nil {
			return nil, 0, err
		}
		store.Put(rec)
		rows++
	}
	logger.Debug("primary decoded",
		"country", c.String(),
		"rows", rows,
		"records", store.Len(),
		"bytes", dec.BytesRead(),
	)

	if secondary == nil {
		return store, 0, nil
	}

	codeDec, err := NewDecoder(secondary, IndiaStateCodeSchema, DecodeOptions{Encoding: opts.Encoding, Source: opts.SecondaryName})
	if err != nil {
		return nil, 0, err
	}
	matched, err := store.Enrich(CodeEntries(codeDec))
	if err != nil {
		return nil, 0, err
	}
	logger.Debug("state codes merged", "country", c.String(), "matched", matched, "records", store.Len())

	return store, matched, nil
}
