// Package core provides the census normalization, merge and query layer.
//
// This package holds all domain logic independent of any transport. It is
// used by the HTTP server, the census CLI and tests without modification.
//
// # Architecture
//
// The package is organized around a few concepts:
//
//   - Decoder: validates a CSV header against a [Schema] and yields typed rows lazily.
//   - Adapters: one per [Country], mapping decoded rows to the unified [Record].
//   - Store: the state-keyed record set built by [BuildStore], optionally
//     enriched with India state codes.
//   - Orderings: a [Field] plus a [Direction], applied by [Sort].
//   - Analyser: the session that owns the current store and serves sorted
//     JSON, exports and cross-country comparisons.
//
// # Loading
//
//	a := core.NewAnalyser(core.DefaultOptions())
//	n, err := a.LoadCensusData(ctx, core.India,
//	    "IndiaStateCensusData.csv", "IndiaStateCode.csv")
//
// A load replaces the session store as a whole. A failed load leaves the
// previous store in place.
//
// # Views
//
// The catalogue returned by [Views] names the orderings that are persisted
// to fixed file names, for example "india-state" writes stateWiseIndiaSorted.json:
//
//	out, err := a.ExportView(ctx, "india-state")
//
// # Error Handling
//
// Every failure is an [*Error] tagged with a [Kind]. Use errors.Is with
// [ErrFileAccess], [ErrDecode], [ErrEmptyData] or [ErrUnsupportedCountry].
// [MapError] turns any error into a user-facing message with a support code.
package core
