package storage

import "errors"

// Common storage errors
var (
	// ErrIdentityNotFound indicates that identity was not found in storage
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrIdentityExists indicates that identity with this key already exists
	ErrIdentityExists = errors.New("identity already exists")

	// ErrEntryNotFound indicates that vault entry was not found
	ErrEntryNotFound = errors.New("vault entry not found")
)
