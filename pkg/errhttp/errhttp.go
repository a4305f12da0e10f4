// Package errhttp maps the apperr taxonomy to HTTP status codes and writes
// the uniform error envelope. Domain sentinels wrap an apperr kind, so a new
// sentinel needs no change here.
package errhttp

import (
	"errors"
	"net/http"
	"time"

	"github.com/ghuser/webapp/pkg/apperr"
	"github.com/ghuser/webapp/pkg/httpx"
	"github.com/ghuser/webapp/pkg/telemetry"
)

// Realm is advertised in WWW-Authenticate on every 401.
const Realm = "webapp"

// Body is the JSON error envelope.
type Body struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Path      string            `json:"path"`
	Fields    map[string]string `json:"fields,omitempty"`
} // @name ErrorResponse

// WriteError maps err to a status code and writes the envelope.
// Uses errors.Is so wrapped sentinels are matched. Unrecognized errors are
// 500 with a masked message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	body := Body{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   httpx.SafeError(err, status),
		Path:      r.URL.Path,
	}

	var fe *apperr.FieldError
	if errors.As(err, &fe) {
		body.Fields = fe.Fields
	}

	if status == http.StatusInternalServerError {
		telemetry.CaptureError(r.Context(), err)
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Basic realm="`+Realm+`"`)
	}
	httpx.JSON(w, status, body)
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest // 400
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized // 401
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden // 403
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
