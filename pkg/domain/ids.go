// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"strings"

	dErrors "udcf/pkg/domain-errors"
)

// Distinct identity types - the compiler prevents passing a CallerID where an
// OwnerID is expected. Identities are opaque strings issued by an external
// identity provider; the only invariant enforced here is non-emptiness.
// Keeping owner and caller as separate typed fields replaces fragile string
// prefixing schemes for disambiguating the two in shared log fields.
type (
	OwnerID  string
	CallerID string
)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseOwnerID(s string) (OwnerID, error) {
	if strings.TrimSpace(s) == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "owner ID cannot be empty")
	}
	return OwnerID(s), nil
}

func ParseCallerID(s string) (CallerID, error) {
	if strings.TrimSpace(s) == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "caller ID cannot be empty")
	}
	return CallerID(s), nil
}

// String methods - for logging and debugging.

func (id OwnerID) String() string  { return string(id) }
func (id CallerID) String() string { return string(id) }

// IsEmpty checks - used for service-layer validation.

func (id OwnerID) IsEmpty() bool  { return strings.TrimSpace(string(id)) == "" }
func (id CallerID) IsEmpty() bool { return strings.TrimSpace(string(id)) == "" }
