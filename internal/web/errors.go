package web

// errors.go provides unified error responses for the API.
//
// The flow: a handler encounters an error and calls respondError,
// which logs the technical error with the request ID, maps it to a
// user-facing message via core.MapError, derives the HTTP status
// from the error kind, and writes a JSON body carrying both the
// message and a stable support code.

import (
	"encoding/json"
	"net/http"

	"github.com/chira-platforms/csvimport/internal/core"
	"github.com/chira-platforms/csvimport/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
// Error is the machine-readable failure kind; Message and Action are
// for people.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusForKind maps each importer error kind to an HTTP status.
func statusForKind(kind core.Kind) int {
	switch kind {
	case core.KindFileNotFound:
		return http.StatusNotFound
	case core.KindPermissionDenied:
		return http.StatusForbidden
	case core.KindDecode, core.KindParse:
		return http.StatusUnprocessableEntity
	case core.KindUnknownColumn:
		return http.StatusBadRequest
	case core.KindNoData:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the technical error and writes the user-facing
// JSON response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := core.KindOf(err)
	status := statusForKind(kind)
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"kind", kind.String(),
		"code", userMsg.Code,
		"error", err.Error(),
	)

	writeErrorJSON(w, kind.String(), userMsg, status)
}

// respondBadRequest reports a malformed request (invalid JSON,
// missing parameter) without involving the importer taxonomy.
func (s *Server) respondBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	logging.FromContext(r.Context()).Warn("bad request",
		"path", r.URL.Path,
		"reason", msg,
	)

	writeErrorJSON(w, "bad_request", core.UserMessage{
		Message: msg,
		Action:  "Fix the request and try again",
		Code:    "REQ001",
	}, http.StatusBadRequest)
}

func writeErrorJSON(w http.ResponseWriter, kind string, msg core.UserMessage, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   kind,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}
