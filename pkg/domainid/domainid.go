// Package domainid provides the shared building blocks for typed entity
// identifiers. Every identifier is a UUIDv7 so identifiers generated later
// sort after earlier ones when compared byte-wise.
//
// Bounded contexts declare their own named type over uuid.UUID and delegate
// generation and parsing here:
//
//	type ItemID uuid.UUID
//
//	func NewItemID() ItemID { return ItemID(domainid.New()) }
//
//	func ParseItemID(s string) (ItemID, error) {
//		id, err := domainid.Parse("ItemID", s)
//		return ItemID(id), err
//	}
package domainid

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidID matches every InvalidIDError via errors.Is.
var ErrInvalidID = errors.New("invalid identifier")

// InvalidIDError reports a value that could not be turned into an identifier.
type InvalidIDError struct {
	Kind   string // identifier type name, e.g. "ItemID"
	Value  string // offending input as received
	Reason string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid %s: %q %s", e.Kind, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidID) true for any InvalidIDError.
func (e *InvalidIDError) Is(target error) bool {
	return target == ErrInvalidID
}

// New returns a fresh time-ordered UUIDv7.
// google/uuid only fails here when crypto/rand is unavailable, which the
// runtime already treats as fatal.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// Parse returns the UUID encoded by s. Any well-formed UUID parses, the nil
// UUID included; it simply never names a stored entity.
func Parse(kind, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, &InvalidIDError{Kind: kind, Value: s, Reason: "is not a valid UUID"}
	}
	return id, nil
}

// FromBytes validates a raw 16-byte value.
func FromBytes(kind string, b []byte) (uuid.UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, &InvalidIDError{Kind: kind, Value: fmt.Sprintf("%x", b), Reason: "is not 16 bytes"}
	}
	return id, nil
}

// Compare orders two identifiers byte-wise, which for UUIDv7 is creation order.
func Compare(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
