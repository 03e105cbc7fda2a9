package models

import (
	"fmt"
	"time"

	"udcf/internal/policy"
	id "udcf/pkg/domain"
	dErrors "udcf/pkg/domain-errors"
)

// Record holds an owner's granted data categories.
//
// # Replacement Invariant
//
// A Record is ALWAYS written wholesale: setting consent replaces the entire
// record for the owner, never a single category. Callers rely on the
// replacement being the atomic unit, so the store layer must never merge a
// partial record into an existing one.
//
// An owner with no stored record has the all-false default; absence is a
// valid, common state, not an error.
type Record struct {
	OwnerID    id.OwnerID
	Categories policy.Consent
	UpdatedAt  time.Time
}

// NewRecord creates a Record with domain invariant checks. Unknown category
// keys are rejected; the category enum is closed everywhere else in the
// system, so accepting arbitrary keys here would only mask caller bugs.
func NewRecord(ownerID id.OwnerID, categories policy.Consent, updatedAt time.Time) (*Record, error) {
	if ownerID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "owner ID required")
	}
	if updatedAt.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "update time required")
	}
	for category := range categories {
		if !category.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown data category %q", category))
		}
	}
	return &Record{
		OwnerID:    ownerID,
		Categories: categories.Clone(),
		UpdatedAt:  updatedAt,
	}, nil
}

// Default returns the all-false record for an owner with no stored consent.
func Default(ownerID id.OwnerID) *Record {
	categories := make(policy.Consent, len(policy.ValidCategories))
	for category := range policy.ValidCategories {
		categories[category] = false
	}
	return &Record{OwnerID: ownerID, Categories: categories}
}

// Snapshot returns an independent copy of the granted categories for policy
// evaluation, so concurrent writes cannot mutate an evaluation in flight.
func (r *Record) Snapshot() policy.Consent {
	return r.Categories.Clone()
}
