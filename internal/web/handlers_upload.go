package web

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/census/internal/core"
	"github.com/go-chi/chi/v5"
)

// handleLoad replaces the session store with an uploaded census file.
// The multipart form carries the census CSV as "file" and, for India, an
// optional state-code CSV as "stateCodes".
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	c, ok := s.parseCountry(w, r, chi.URLParam(r, "country"))
	if !ok {
		return
	}
	if !s.parseUpload(w, r) {
		return
	}

	file, header, ok := s.formCSV(w, r, "file", true)
	if !ok {
		return
	}
	defer file.Close()

	var codes multipart.File
	codesFile, codesHeader, ok := s.formCSV(w, r, "stateCodes", false)
	if !ok {
		return
	}
	if codesFile != nil {
		defer codesFile.Close()
		codes = codesFile
	}

	if !s.acquireLoad(w, r) {
		return
	}
	defer s.limiter.Release()

	ctx := WithRequestMetadata(r.Context(), r)
	var res core.LoadResult
	var err error
	if codes != nil {
		res, err = s.analyser.LoadFrom(ctx, c, header.Filename, file, core.Named(codesHeader.Filename, codes))
	} else {
		res, err = s.analyser.LoadFrom(ctx, c, header.Filename, file, nil)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

// handleLoadDefault loads the configured source files for a country.
// India is enriched with the configured state-code file unless ?enrich=false.
func (s *Server) handleLoadDefault(w http.ResponseWriter, r *http.Request) {
	c, ok := s.parseCountry(w, r, chi.URLParam(r, "country"))
	if !ok {
		return
	}

	primary, secondary := s.cfg.Census.USPath, ""
	if c == core.India {
		primary = s.cfg.Census.IndiaPath
		if r.URL.Query().Get("enrich") != "false" {
			secondary = s.cfg.Census.IndiaStateCodePath
		}
	}

	if !s.acquireLoad(w, r) {
		return
	}
	defer s.limiter.Release()

	ctx := WithRequestMetadata(r.Context(), r)
	var err error
	if secondary != "" {
		_, err = s.analyser.LoadCensusData(ctx, c, primary, secondary)
	} else {
		_, err = s.analyser.LoadCensusData(ctx, c, primary)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.analyser.Status().Last)
}

// handlePreview decodes an uploaded file without loading it.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	c, ok := s.parseCountry(w, r, chi.URLParam(r, "country"))
	if !ok {
		return
	}
	if !s.parseUpload(w, r) {
		return
	}

	file, header, ok := s.formCSV(w, r, "file", true)
	if !ok {
		return
	}
	defer file.Close()

	result, err := s.analyser.Preview(r.Context(), c, header.Filename, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// parseUpload bounds the request body and parses the multipart form.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) bool {
	maxSize := s.cfg.Input.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.respondErrorStatus(w, r, fmt.Errorf("invalid form: %w", err), status)
		return false
	}
	return true
}

// formCSV opens the named form file. A missing optional part returns a nil
// file and true.
func (s *Server) formCSV(w http.ResponseWriter, r *http.Request, name string, required bool) (multipart.File, *multipart.FileHeader, bool) {
	file, header, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) && !required {
		return nil, nil, true
	}
	if err != nil {
		s.respondErrorStatus(w, r, fmt.Errorf("%s: no file provided", name), http.StatusBadRequest)
		return nil, nil, false
	}
	if s.cfg.Input.RequireCSVExt && !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		file.Close()
		s.respondErrorStatus(w, r, &core.Error{
			Kind:    core.KindFileAccess,
			Op:      "upload",
			Path:    header.Filename,
			Message: "not a .csv file",
		}, http.StatusBadRequest)
		return nil, nil, false
	}
	return file, header, true
}
