package web

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/census/internal/core"
	"github.com/go-chi/chi/v5"
)

// ExportResponse reports where an export was written.
type ExportResponse struct {
	View     string        `json:"view,omitempty"`
	Ordering core.Ordering `json:"ordering"`
	Path     string        `json:"path"`
	Bytes    int           `json:"bytes"`
}

// handleExportView writes a catalogue view of the current store.
func (s *Server) handleExportView(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	v, ok := core.ViewByKey(key)
	if !ok {
		s.respondError(w, r, fmt.Errorf("%w: %s", core.ErrUnknownView, key))
		return
	}

	body, err := s.analyser.ExportView(r.Context(), key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ExportResponse{
		View:     v.Key,
		Ordering: v.Ordering,
		Path:     s.analyser.ViewPath(v),
		Bytes:    len(body),
	})
}

// handleExportOrdering writes the current store in an ad-hoc order to
// ?file= inside the export directory.
func (s *Server) handleExportOrdering(w http.ResponseWriter, r *http.Request) {
	o, ok := s.parseOrdering(w, r)
	if !ok {
		return
	}

	name := filepath.Base(strings.TrimSpace(r.URL.Query().Get("file")))
	if name == "." || name == string(filepath.Separator) {
		name = exportName(o)
	}
	if filepath.Ext(name) == "" {
		name += ".json"
	}

	path := filepath.Join(s.cfg.Export.Dir, name)
	body, err := s.analyser.Export(r.Context(), o, path)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ExportResponse{Ordering: o, Path: path, Bytes: len(body)})
}

// exportName derives a file name such as "census-population-desc.json".
func exportName(o core.Ordering) string {
	return fmt.Sprintf("census-%s-%s.json", o.Field, o.Direction)
}
