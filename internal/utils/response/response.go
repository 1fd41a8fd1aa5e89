// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every gateway handler sends JSON back to the client. Rather than
// repeating the same three lines (set header, set status, encode JSON) in
// every handler, we centralise them here.
//
// Error responses always share one shape.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aanand-mishra/students-grpc/internal/service"
)

// Response is the status envelope.
//
// Data endpoints return their own JSON shape (a student, a page…) on
// success. Error responses always look like:
//
//	{ "status": "error", "kind": "INVALID_ARGUMENT", "error": "name required" }
//
// and bodiless successes, such as /healthz, like:
//
//	{ "status": "ok" }
type Response struct {
	Status string `json:"status"`
	Kind   string `json:"kind,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Status values for Response.Status.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK is the envelope for a success with nothing else to report.
func OK() Response {
	return Response{Status: StatusOK}
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for errors that never reached the service layer (decode errors).
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ServiceError converts an error returned by the service package into the
// HTTP status code and envelope to send. Internal causes are not exposed.
func ServiceError(err error) (int, Response) {
	kind := service.KindOf(err)

	code := http.StatusInternalServerError
	switch kind {
	case service.KindInvalidArgument:
		code = http.StatusBadRequest
	case service.KindNotFound:
		code = http.StatusNotFound
	}

	return code, Response{
		Status: StatusError,
		Kind:   kind.String(),
		Error:  service.Message(err),
	}
}

// WriteError writes err as returned by the service package.
func WriteError(w http.ResponseWriter, err error) error {
	code, body := ServiceError(err)
	return WriteJSON(w, code, body)
}
