package web

// errors.go provides unified error response handling for the web layer.
//
// Every failure is logged with its technical detail and request ID, then
// returned to the client as a JSON body carrying the user-facing message,
// a suggested action and the support code from core.MapError. The HTTP
// status follows the census error kind.

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/census/internal/core"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code, Kind) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
	Kind    string `json:"kind,omitempty"`
}

// statusFor maps an error to the HTTP status reported to the client.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyLoads):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrUnknownView):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	switch core.KindOf(err) {
	case core.KindFileAccess, core.KindUnsupportedCountry:
		return http.StatusBadRequest
	case core.KindDecode:
		return http.StatusUnprocessableEntity
	case core.KindEmptyData:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes its user-facing form.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	s.respondErrorStatus(w, r, err, statusFor(err))
}

// respondErrorStatus is respondError with an explicit status, used for
// request validation failures that carry no census kind.
func (s *Server) respondErrorStatus(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	resp := ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	}
	if k := core.KindOf(err); k != core.KindUnknown {
		resp.Kind = k.String()
	}
	writeJSON(w, statusCode, resp)
}
