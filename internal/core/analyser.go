package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/JonMunkholm/census/internal/logging"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrUnknownView is returned when a view key is not in the catalogue.
var ErrUnknownView = errors.New("unknown view")

// Default cache timings for rendered orderings.
const (
	DefaultCacheTTL     = 10 * time.Minute
	DefaultCacheCleanup = 15 * time.Minute
)

// Options configures an Analyser.
type Options struct {
	Encoding      string        // Input encoding for every source
	RequireCSVExt bool          // Reject paths that do not end in .csv
	ExportDir     string        // Directory for view exports
	Pretty        bool          // Indent exported files
	CacheTTL      time.Duration // Lifetime of a rendered ordering
	CacheCleanup  time.Duration // Interval for purging expired renders
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		RequireCSVExt: true,
		ExportDir:     ".",
		Pretty:        true,
		CacheTTL:      DefaultCacheTTL,
		CacheCleanup:  DefaultCacheCleanup,
	}
}

// Analyser is one census session: it owns the most recently loaded store
// and answers ordering and export queries against it.
//
// An Analyser is safe for concurrent use. A load replaces the store as a
// whole; queries running at the same time see either the old or the new
// store, never a mix.
type Analyser struct {
	opts Options

	mu    sync.RWMutex
	store *Store
	last  *LoadResult

	rendered *cache.Cache
}

// NewAnalyser creates an empty session.
func NewAnalyser(opts Options) *Analyser {
	if opts.CacheTTL == 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.CacheCleanup == 0 {
		opts.CacheCleanup = DefaultCacheCleanup
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	return &Analyser{
		opts:     opts,
		rendered: cache.New(opts.CacheTTL, opts.CacheCleanup),
	}
}

// ErrTooManySources is returned when more than one state-code file is given
// to a load.
var ErrTooManySources = errors.New("too many state-code files: at most one may be given")

// LoadCensusData loads the primary census file at primaryPath for country,
// optionally enriching it with the state-code file at secondaryPath (India
// only). It returns the number of records in the new store.
//
// A failed load leaves the previously loaded store in place.
func (a *Analyser) LoadCensusData(ctx context.Context, c Country, primaryPath string, secondaryPath ...string) (int, error) {
	if _, err := adapterFor(c); err != nil {
		return 0, err
	}
	if len(secondaryPath) > 1 {
		return 0, ErrTooManySources
	}
	if len(secondaryPath) == 1 && c != India {
		return 0, unsupportedCountry("enrich", c.String())
	}

	primary, err := a.openSource(primaryPath)
	if err != nil {
		return 0, err
	}
	defer primary.Close()

	var secondary io.Reader
	if len(secondaryPath) == 1 {
		f, err := a.openSource(secondaryPath[0])
		if err != nil {
			return 0, err
		}
		defer f.Close()
		secondary = f
	}

	res, err := a.LoadFrom(ctx, c, primaryPath, primary, secondary)
	if err != nil {
		return 0, err
	}
	return res.Records, nil
}

// LoadFrom is LoadCensusData for already-open sources. name identifies the
// primary source in errors and in the load result; secondary may be nil.
// Use Named to attach a name to the secondary source.
func (a *Analyser) LoadFrom(ctx context.Context, c Country, name string, primary, secondary io.Reader) (LoadResult, error) {
	start := time.Now()
	id := uuid.New().String()
	logger := logging.WithFields(ctx, "load_id", id, "country", c.String(), "source", name)
	if ip := ClientIPFromContext(ctx); ip != "" {
		logger = logger.With("client_ip", ip)
	}

	if _, err := adapterFor(c); err != nil {
		return LoadResult{}, err
	}
	if primary == nil {
		return LoadResult{}, fileAccess("load", name, errors.New("no primary source"))
	}

	secondaryName := ""
	if secondary != nil {
		secondaryName = sourceName(secondary, "stateCodes")
	}

	store, matched, err := BuildStore(ctx, c, primary, secondary, BuildOptions{
		Encoding:      a.opts.Encoding,
		PrimaryName:   name,
		SecondaryName: secondaryName,
		Logger:        logger,
	})
	if err != nil {
		logger.Debug("load failed", "error", err)
		return LoadResult{}, err
	}

	res := LoadResult{
		ID:         id,
		Country:    c,
		Records:    store.Len(),
		Enriched:   matched,
		Source:     name,
		StateCodes: secondaryName,
		LoadedAt:   time.Now().UTC(),
		Duration:   time.Since(start),
	}
	res.DurationMS = res.Duration.Milliseconds()

	a.mu.Lock()
	a.store = store
	a.last = &res
	a.rendered.Flush()
	a.mu.Unlock()

	logger.Info("census loaded",
		"records", res.Records,
		"enriched", res.Enriched,
		"duration_ms", res.DurationMS,
	)
	return res, nil
}

// Status reports what the session currently holds.
func (a *Analyser) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.last == nil {
		return Status{}
	}
	last := *a.last
	return Status{Loaded: a.store.Len() > 0, Last: &last}
}

// Sorted returns the records of the current store in the given order.
func (a *Analyser) Sorted(o Ordering) ([]Record, error) {
	store, err := a.snapshot("sort", o)
	if err != nil {
		return nil, err
	}
	return Sort(store.Records(), o), nil
}

// SortedJSON renders the current store in the given order as a JSON array.
// Renders are cached until the next load.
func (a *Analyser) SortedJSON(o Ordering) (string, error) {
	store, err := a.snapshot("sort", o)
	if err != nil {
		return "", err
	}
	return a.render(store, o)
}

// Export renders the ordering like SortedJSON and writes the same records
// to path, replacing any existing file.
func (a *Analyser) Export(ctx context.Context, o Ordering, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fileAccess("export", path, errors.New("no output path"))
	}
	store, err := a.snapshot("export", o)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := a.render(store, o)
	if err != nil {
		return "", err
	}
	if err := WriteJSONFile(path, Sort(store.Records(), o), a.opts.Pretty); err != nil {
		return "", err
	}

	logging.FromContext(ctx).Info("census exported",
		"country", store.Country().String(),
		"ordering", o.String(),
		"path", path,
		"records", store.Len(),
	)
	return out, nil
}

// ExportView exports the catalogue view key into the export directory under
// the view's file name. The view must belong to the loaded country.
func (a *Analyser) ExportView(ctx context.Context, key string) (string, error) {
	v, ok := ViewByKey(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownView, key)
	}

	a.mu.RLock()
	store := a.store
	a.mu.RUnlock()
	if store.Len() == 0 {
		return "", emptyData("export")
	}
	if store.Country() != v.Country {
		return "", &Error{
			Kind:    KindUnsupportedCountry,
			Op:      "export",
			Message: fmt.Sprintf("view %s needs %s data, loaded %s", v.Key, v.Country, store.Country()),
		}
	}
	return a.Export(ctx, v.Ordering, a.ViewPath(v))
}

// ViewPath returns where ExportView writes v.
func (a *Analyser) ViewPath(v View) string {
	return filepath.Join(a.opts.ExportDir, v.FileName)
}

// snapshot returns the current store after checking it can serve o.
func (a *Analyser) snapshot(op string, o Ordering) (*Store, error) {
	a.mu.RLock()
	store := a.store
	a.mu.RUnlock()

	if store.Len() == 0 {
		return nil, emptyData(op)
	}
	if err := o.check(store.Country()); err != nil {
		return nil, err
	}
	return store, nil
}

func (a *Analyser) render(store *Store, o Ordering) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	// A load between snapshot and render flushed the cache; skip it.
	current := a.store == store
	key := o.String()
	if current {
		if v, ok := a.rendered.Get(key); ok {
			return v.(string), nil
		}
	}

	out, err := RenderJSON(Sort(store.Records(), o))
	if err != nil {
		return "", err
	}
	if current {
		a.rendered.Set(key, out, cache.DefaultExpiration)
	}
	return out, nil
}

// openSource opens path for reading, enforcing the .csv extension when
// configured.
func (a *Analyser) openSource(path string) (*os.File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fileAccess("open", path, errors.New("no file provided"))
	}
	if a.opts.RequireCSVExt && !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, fileAccess("open", path, errors.New("not a .csv file"))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fileAccess("open", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fileAccess("open", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fileAccess("open", path, errors.New("is a directory"))
	}
	return f, nil
}

type namedReader struct {
	io.Reader
	name string
}

func (r namedReader) Name() string { return r.name }

// Named attaches a display name to r for load results and errors.
func Named(name string, r io.Reader) io.Reader {
	return namedReader{Reader: r, name: name}
}

// sourceName returns r's name if it has one (as *os.File does).
func sourceName(r io.Reader, fallback string) string {
	if n, ok := r.(interface{ Name() string }); ok && n.Name() != "" {
		return n.Name()
	}
	return fallback
}
