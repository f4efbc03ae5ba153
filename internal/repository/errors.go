// Package repository implements the MySQL-backed storage contracts:
// the table catalog, the reservation store and the auth tables.
// Business outcomes are reported with the sentinel errors defined in
// the booking package so that handlers never inspect driver errors.
// The only sentinel owned here is ErrEmailExists, which belongs to
// the auth surface rather than the booking core.
package repository

import "errors"

// ErrEmailExists is returned when signup hits the unique constraint
// on users.email. Handlers should translate this into an HTTP 400
// response per the public API contract.
var ErrEmailExists = errors.New("email already registered")
