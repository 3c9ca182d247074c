package web

import (
	"net/http"
	"strings"

	"github.com/JonMunkholm/census/internal/core"
)

// handleCompare ranks India against the US without touching the session.
//
// With a multipart body the "india" and "us" parts are compared; otherwise
// the configured source files are used. ?metric= selects population,
// density or area and ?mode=legacy compares India density against US
// housing density.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	metric, err := core.ParseMetric(q.Get("metric"))
	if err != nil {
		s.respondErrorStatus(w, r, err, http.StatusBadRequest)
		return
	}
	mode, err := core.ParseCompareMode(q.Get("mode"))
	if err != nil {
		s.respondErrorStatus(w, r, err, http.StatusBadRequest)
		return
	}
	opts := core.CompareOptions{Metric: metric, Mode: mode}

	multipartBody := strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
	if multipartBody && !s.parseUpload(w, r) {
		return
	}

	if !s.acquireLoad(w, r) {
		return
	}
	defer s.limiter.Release()

	ctx := WithRequestMetadata(r.Context(), r)
	var result core.Comparison
	if multipartBody {
		india, _, ok := s.formCSV(w, r, "india", true)
		if !ok {
			return
		}
		defer india.Close()
		us, _, ok := s.formCSV(w, r, "us", true)
		if !ok {
			return
		}
		defer us.Close()
		result, err = s.analyser.CompareFrom(ctx, india, us, opts)
	} else {
		result, err = s.analyser.Compare(ctx, s.cfg.Census.IndiaPath, s.cfg.Census.USPath, opts)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
