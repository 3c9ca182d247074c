package web

import (
	"net/http"

	"github.com/JonMunkholm/census/internal/core"
)

// FieldInfo describes one sortable field.
type FieldInfo struct {
	Name             string         `json:"name"`
	USOnly           bool           `json:"usOnly"`
	DefaultDirection core.Direction `json:"defaultDirection"`
}

// handleDashboard renders the session status page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := statusPage(s.analyser.Status(), core.Views())
	if err := page.Render(r.Context(), w); err != nil {
		s.respondErrorStatus(w, r, err, http.StatusInternalServerError)
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"loaded":      s.analyser.Status().Loaded,
		"activeLoads": s.limiter.Active(),
	})
}

// handleStatus returns the most recent load of the session.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.analyser.Status())
}

// handleFields lists the fields that can order a country's data. The
// country comes from ?country= or, if absent, from the current session.
func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	c := core.CountryUnknown
	if q := r.URL.Query().Get("country"); q != "" {
		parsed, err := core.ParseCountry(q)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		c = parsed
	} else if st := s.analyser.Status(); st.Last != nil {
		c = st.Last.Country
	}

	fields := []FieldInfo{}
	for _, f := range core.Fields() {
		if c != core.CountryUnknown && !f.AvailableFor(c) {
			continue
		}
		fields = append(fields, FieldInfo{
			Name:             f.String(),
			USOnly:           f.USOnly(),
			DefaultDirection: core.DefaultDirection(f),
		})
	}
	writeJSON(w, http.StatusOK, fields)
}

// handleSorted returns the current store as JSON in the requested order.
// field defaults to population; dir defaults to the field's natural direction.
func (s *Server) handleSorted(w http.ResponseWriter, r *http.Request) {
	o, ok := s.parseOrdering(w, r)
	if !ok {
		return
	}
	body, err := s.analyser.SortedJSON(o)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeRawJSON(w, body)
}

// handleListViews lists the view catalogue, optionally for one country.
func (s *Server) handleListViews(w http.ResponseWriter, r *http.Request) {
	views := core.Views()
	if q := r.URL.Query().Get("country"); q != "" {
		c, err := core.ParseCountry(q)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		views = core.ViewsFor(c)
	}
	writeJSON(w, http.StatusOK, views)
}

// parseOrdering reads ?field= and ?dir=, answering the request on failure.
func (s *Server) parseOrdering(w http.ResponseWriter, r *http.Request) (core.Ordering, bool) {
	q := r.URL.Query()
	field := q.Get("field")
	if field == "" {
		field = core.ByPopulation.String()
	}
	o, err := core.ParseOrdering(field, q.Get("dir"))
	if err != nil {
		s.respondErrorStatus(w, r, err, http.StatusBadRequest)
		return core.Ordering{}, false
	}
	return o, true
}

// parseCountry reads the {country} route parameter.
func (s *Server) parseCountry(w http.ResponseWriter, r *http.Request, raw string) (core.Country, bool) {
	c, err := core.ParseCountry(raw)
	if err != nil {
		s.respondError(w, r, err)
		return core.CountryUnknown, false
	}
	return c, true
}
