// Package validate implements the domain validators run during request-body
// deserialization: OTP code format, base64 payloads, ISO date ranges, and
// cross-key consistency of uploaded TEK batches.
//
// All validators are pure functions over their inputs: no shared mutable
// state, no side effects on failure. Bounds (backward date window, maximum
// keys per upload) are injected explicitly rather than read from ambient
// configuration, so tests can pin them deterministically.
//
// This file centralizes the sentinel errors so callers can branch with
// errors.Is and the HTTP layer can map them to stable client-facing codes.
package validate

import "errors"

// Format errors: the input is syntactically or semantically invalid.
// Always recoverable, mapped to 400-class responses upstream.
var (
	// ErrInvalidOtp indicates a 10-character code whose check digit does
	// not match, or that contains symbols outside the OTP alphabet.
	ErrInvalidOtp = errors.New("invalid OTP code")

	// ErrInvalidOtpSha indicates a code that is not 10 characters long and
	// is not a 64-character hexadecimal SHA-256 digest.
	ErrInvalidOtpSha = errors.New("invalid OTP SHA256 code")

	// ErrInvalidBase64 indicates a payload that does not decode as base64.
	ErrInvalidBase64 = errors.New("invalid base64 string")

	// ErrBase64Length indicates a base64 payload whose encoded or decoded
	// length is outside the configured bounds.
	ErrBase64Length = errors.New("invalid base64 string length")

	// ErrDateInFuture indicates a calendar date after today.
	ErrDateInFuture = errors.New("date is in the future")

	// ErrDateTooFarBack indicates a calendar date beyond the allowed
	// backward window.
	ErrDateTooFarBack = errors.New("date is too far back in time")
)

// Consistency errors: an uploaded TEK batch violates cross-key invariants.
// The reason strings are relied upon by callers and tests; evaluation order
// and short-circuiting must be preserved.
var (
	// ErrNonStandardRollingPeriod indicates a key whose rolling period is
	// not the standard 24-hour value.
	ErrNonStandardRollingPeriod = errors.New("non-standard rolling period")

	// ErrTooManyKeys indicates an upload with more keys than a client can
	// legitimately hold.
	ErrTooManyKeys = errors.New("too many keys")

	// ErrUnexpectedRollingStarts indicates rolling start numbers that do
	// not form the expected contiguous daily sequence (gaps, overlaps, or
	// out-of-sequence values).
	ErrUnexpectedRollingStarts = errors.New("unexpected rolling start numbers")
)
