package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
// Malformed identifiers are reported as *domainid.InvalidIDError.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	// Repositories and use cases report absence with a bool; only the HTTP
	// adapter turns absence into this error.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItemName indicates the item name violates domain constraints.
	ErrInvalidItemName = errors.New("invalid item name")
)
