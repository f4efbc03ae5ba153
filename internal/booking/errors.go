// Package booking implements the reservation admission engine and the
// booking service that orchestrates it. The package owns the sentinel
// error values that classify every expected business outcome. Handlers
// translate these into HTTP responses; repositories translate driver
// errors into them. Anything not covered here is treated as an
// unexpected infrastructure failure.
package booking

import "errors"

// ErrValidation is returned when a request is malformed or missing
// required fields. It is always produced before any storage access,
// so a validation failure implies zero side effects. Handlers should
// translate this into an HTTP 400 response.
var ErrValidation = errors.New("validation failed")

// ErrUnknownTable is returned when a table number does not resolve
// to a registered table. Handlers should translate this into an
// HTTP 400 response.
var ErrUnknownTable = errors.New("table not found")

// ErrSlotConflict is returned when admission determined that an
// overlapping reservation already exists for the requested table and
// date, or when the commit race could not be settled within the
// retry budget. No partial write occurs. Handlers should translate
// this into an HTTP 409 response.
var ErrSlotConflict = errors.New("slot already reserved")

// ErrUnauthenticated is returned when the caller identity cannot be
// resolved from the request. Handlers should translate this into an
// HTTP 401 response.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrStorageUnavailable wraps transient infrastructure failures from
// the storage layer. Idempotent reads are retried a bounded number
// of times at the repository boundary before this surfaces.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrCommitContention is returned by ReservationStore.Commit when
// the conditional write lost a storage-level race (lock wait or
// deadlock between same-key contenders) without the precondition
// itself being violated. The engine redoes the read-check-write
// cycle; the outcome may differ once the interleaving settles.
var ErrCommitContention = errors.New("commit contention")
