package models

import (
	"errors"
	"fmt"
	"strings"

	itemdomain "github.com/ghuser/menagerist/services/item/domain"
)

// ItemName is a value object representing a valid item name.
// A name must contain at least one non-whitespace character; surrounding
// whitespace is preserved as given.
type ItemName string

// NewItemName constructs a valid ItemName or returns an error wrapping
// ErrInvalidItemName if constraints are violated.
func NewItemName(s string) (ItemName, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, errBlankName)
	}
	return ItemName(s), nil
}

var errBlankName = errors.New("item name cannot be empty")

// String returns the underlying string value.
func (n ItemName) String() string {
	return string(n)
}
