// Package store holds helpers shared by the Store implementations in its
// subpackages.
package store

import (
	"fmt"
	"strings"

	"github.com/marwen-abid/stellar-identity-go/errors"
)

// Kind names the two entry families a store holds.
type Kind string

const (
	KindIdentity Kind = "identity"
	KindNetwork  Kind = "network"
)

// ValidateName rejects names that are empty, start with a dot, or contain a
// path separator, so every name maps to exactly one file or key.
func ValidateName(name string) error {
	switch {
	case name == "":
		return errors.NewStoreError(errors.INVALID_NAME, "name must not be empty", nil)
	case strings.HasPrefix(name, "."):
		return errors.NewStoreError(errors.INVALID_NAME, fmt.Sprintf("name %q must not start with '.'", name), nil)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return errors.NewStoreError(errors.INVALID_NAME, fmt.Sprintf("name %q must not contain path separators", name), nil)
	}
	return nil
}

// NotFound builds the NOT_FOUND error for a missing entry.
func NotFound(kind Kind, name string) error {
	return errors.NewStoreError(errors.NOT_FOUND, fmt.Sprintf("%s %q not found", kind, name), nil).
		With("kind", string(kind)).
		With("name", name)
}
