// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/menagerist/pkg/domainid"
	"github.com/ghuser/menagerist/pkg/httpx"
	"github.com/ghuser/menagerist/pkg/logger"
	itemdomain "github.com/ghuser/menagerist/services/item/domain"
)

// Writer turns handler errors into JSON error responses.
type Writer struct {
	log          logger.Logger
	isProduction bool
}

// New returns a Writer. In production, 5xx messages are replaced with the
// status text.
func New(log logger.Logger, isProduction bool) *Writer {
	return &Writer{log: log, isProduction: isProduction}
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors, which are logged.
func (e *Writer) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		e.log.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status, e.isProduction))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domainid.ErrInvalidID):
		return http.StatusBadRequest // 400
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, itemdomain.ErrInvalidItemName):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
