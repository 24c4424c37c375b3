package domain

import "errors"

var (
	// ErrNotFound indicates a referenced local or remote entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTransientFetch indicates a network or timeout failure talking to a remote service.
	ErrTransientFetch = errors.New("transient fetch failure")

	// ErrStoreWrite indicates the local store rejected a write.
	ErrStoreWrite = errors.New("store write failure")

	// ErrMalformedRow indicates a remote row failed shape validation.
	ErrMalformedRow = errors.New("malformed row")
)

// ErrConflict is returned by an insert that lost a race to another writer for the same key.
var ErrConflict = errors.New("conflict")
