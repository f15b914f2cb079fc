// Package services implements the batch lifecycle use-cases on top of the
// repositories: index assignment with counter bootstrap, batch creation,
// read-side queries, and retention. This file centralizes the service-level
// error values so they can be consistently returned by service methods and
// checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed
// at the handler layer, not here.
package services

import "errors"

var (
	// ErrBatchNotFound indicates that no batch exists at the requested
	// index (within the requested origin, for the partitioned store).
	ErrBatchNotFound = errors.New("batch not found")

	// ErrNoBatches indicates that the requested trailing day window holds
	// no batches at all.
	ErrNoBatches = errors.New("no batches found")

	// ErrDuplicateIndex is returned when the store rejects a batch insert
	// because the assigned index is already taken. It means the counter
	// and the table disagree; the write was refused rather than silently
	// overwriting, and the caller may retry with a freshly assigned index.
	ErrDuplicateIndex = errors.New("batch index already assigned")
)
