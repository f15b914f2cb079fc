// Package httpx provides the HTTP-layer glue shared by the services
// embedding this library: the JSON response envelope, the mapping from
// internal errors to stable client-visible error codes, request-body
// binding with content-type enforcement, and dummy-request padding.
//
// It deliberately owns no router and no middleware chain: each embedding
// service mounts these helpers inside its own gin handlers.
//
// This file defines the error taxonomy. Each APIError couples an HTTP
// status with a numeric error code and a message safe to show to clients.
// The numeric codes are a cross-service contract; clients branch on them,
// so existing values must never be renumbered. Ranges are reserved per
// service: 1000-1099 common, 1100-1199 ingestion, 1300-1399 reporting,
// 1400-1499 OTP.
package httpx

import (
	"errors"
	"net/http"

	"github.com/averna/go-exposure-backend/internal/services"
	"github.com/averna/go-exposure-backend/internal/validate"
)

// APIError is an error carrying its client-facing representation: the HTTP
// status to respond with, a stable numeric code, and a whitelisted message.
// Internal reason strings never travel through it.
type APIError struct {
	Status  int
	Code    int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string { return e.Message }

// The cross-service error taxonomy.
var (
	// ErrUnknown is the fallback for unexpected failures.
	ErrUnknown = &APIError{Status: http.StatusInternalServerError, Code: 1000, Message: "An unknown error occurred."}

	// ErrSchemaValidation covers every request-body format and
	// consistency failure.
	ErrSchemaValidation = &APIError{Status: http.StatusBadRequest, Code: 1001, Message: "Request not compliant with the defined schema."}

	// ErrUnauthorizedOtp is returned when data is uploaded with an OTP
	// that was never authorized.
	ErrUnauthorizedOtp = &APIError{Status: http.StatusUnauthorized, Code: 1101, Message: "Unauthorized OTP."}

	// ErrBatchNotFound is returned when the requested batch index does
	// not exist.
	ErrBatchNotFound = &APIError{Status: http.StatusNotFound, Code: 1300, Message: "Batch not found."}

	// ErrNoBatches is returned when there are no batches at all in the
	// requested window.
	ErrNoBatches = &APIError{Status: http.StatusNotFound, Code: 1301, Message: "No batches found."}

	// ErrOtpCollision is returned when re-authorizing an OTP that is
	// already in the database.
	ErrOtpCollision = &APIError{Status: http.StatusConflict, Code: 1400, Message: "OTP already authorized."}
)

// FromError resolves any error to its APIError representation.
//
// Validator sentinels (format and consistency failures alike) map to
// ErrSchemaValidation: the distinction matters for logs, not for clients.
// Store absence sentinels map to their 404-class codes. Anything
// unrecognized maps to ErrUnknown, so internal details never leak.
func FromError(err error) *APIError {
	var api *APIError
	switch {
	case errors.As(err, &api):
		return api
	case errors.Is(err, validate.ErrInvalidOtp),
		errors.Is(err, validate.ErrInvalidOtpSha),
		errors.Is(err, validate.ErrInvalidBase64),
		errors.Is(err, validate.ErrBase64Length),
		errors.Is(err, validate.ErrDateInFuture),
		errors.Is(err, validate.ErrDateTooFarBack),
		errors.Is(err, validate.ErrNonStandardRollingPeriod),
		errors.Is(err, validate.ErrTooManyKeys),
		errors.Is(err, validate.ErrUnexpectedRollingStarts):
		return ErrSchemaValidation
	case errors.Is(err, services.ErrBatchNotFound):
		return ErrBatchNotFound
	case errors.Is(err, services.ErrNoBatches):
		return ErrNoBatches
	default:
		return ErrUnknown
	}
}
