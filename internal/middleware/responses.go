package middleware

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrorResponse is the JSON body of API errors.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError responds with a JSON error body.
func WriteError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	body := ErrorResponse{Error: msg}
	if rid, ok := RequestID(r.Context()); ok {
		body.RequestID = rid
	}
	render.Status(r, code)
	render.JSON(w, r, body)
}
