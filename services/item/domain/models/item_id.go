package models

import (
	"github.com/google/uuid"

	"github.com/ghuser/menagerist/pkg/domainid"
)

const itemIDKind = "ItemID"

// ItemID identifies an Item. It is a UUIDv7, so IDs sort in creation order.
type ItemID uuid.UUID

// NewItemID generates a fresh time-ordered ItemID.
func NewItemID() ItemID {
	return ItemID(domainid.New())
}

// ParseItemID parses the canonical textual form of an ItemID.
// Returns *domainid.InvalidIDError on malformed input.
func ParseItemID(s string) (ItemID, error) {
	id, err := domainid.Parse(itemIDKind, s)
	if err != nil {
		return ItemID{}, err
	}
	return ItemID(id), nil
}

// ItemIDFromBytes builds an ItemID from its raw 16-byte form.
func ItemIDFromBytes(b []byte) (ItemID, error) {
	id, err := domainid.FromBytes(itemIDKind, b)
	if err != nil {
		return ItemID{}, err
	}
	return ItemID(id), nil
}

// UUID returns the underlying uuid.UUID.
func (id ItemID) UUID() uuid.UUID {
	return uuid.UUID(id)
}

// IsZero reports whether id is the zero value.
func (id ItemID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// String returns the canonical lowercase hyphenated form.
func (id ItemID) String() string {
	return uuid.UUID(id).String()
}

// Compare returns -1, 0 or +1 ordering ids by creation time.
func (id ItemID) Compare(other ItemID) int {
	return domainid.Compare(uuid.UUID(id), uuid.UUID(other))
}

func (id ItemID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ItemID) UnmarshalText(b []byte) error {
	parsed, err := ParseItemID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
