package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

var (
	ErrEmptyName           = fmt.Errorf("participant name is required")
	ErrParticipantRequired = fmt.Errorf("participant id is required")
	ErrEstimateRequired    = fmt.Errorf("estimate must be a number")

	// ErrSinkFull signals a push dropped because the subscriber's buffer is
	// full. Never surfaced to clients; cleanup stays driven by the explicit
	// disconnect signal.
	ErrSinkFull = fmt.Errorf("subscriber buffer full, event dropped")

	ErrWorkerPanic = fmt.Errorf("worker panic")
)

// MapToHTTPStatus translates core errors into boundary status codes.
// Validation failures are client errors; everything else is a server fault.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusNoContent
	case stderrors.Is(err, ErrEmptyName),
		stderrors.Is(err, ErrParticipantRequired),
		stderrors.Is(err, ErrEstimateRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
