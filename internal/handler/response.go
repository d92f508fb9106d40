package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxiq/internal/repository"
	"taxiq/internal/service"
)

// ErrorKind is the stable machine-readable classification of an error.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindUnavailable  ErrorKind = "unavailable"
	KindInternal     ErrorKind = "internal"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string    `json:"error"`
	Code  ErrorKind `json:"code"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code, kind := classify(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		// Do not leak internals.
		msg = "internal error"
	}
	c.JSON(code, ErrorResponse{Error: msg, Code: kind})
}

// respondValidation sends a 400 for request-shape problems caught in handlers.
func respondValidation(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: KindValidation})
}

// classify maps service/repository errors onto the error taxonomy.
func classify(err error) (int, ErrorKind) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, KindNotFound

	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict, KindConflict

	case errors.Is(err, service.ErrInvalidCustomerID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidLocationID),
		errors.Is(err, service.ErrInvalidCategoryID),
		errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidRoute),
		errors.Is(err, service.ErrInvalidDriverStatus),
		errors.Is(err, service.ErrRatingOutOfRange),
		errors.Is(err, service.ErrInvalidAmount):
		return http.StatusBadRequest, KindValidation

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, KindUnauthorized

	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrAccountBlocked):
		return http.StatusForbidden, KindForbidden

	case errors.Is(err, service.ErrRideNotPending),
		errors.Is(err, service.ErrRideTerminal),
		errors.Is(err, service.ErrDriverBusy),
		errors.Is(err, service.ErrDriverNotAssigned),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrSequencerContention):
		return http.StatusConflict, KindConflict

	case errors.Is(err, service.ErrNoDriverAvailable),
		errors.Is(err, service.ErrLocationUnavailable):
		return http.StatusServiceUnavailable, KindUnavailable

	default:
		return http.StatusInternalServerError, KindInternal
	}
}
