package decision

import (
	"github.com/google/uuid"

	"udcf/internal/policy"
	id "udcf/pkg/domain"
)

// Request describes one access attempt: a caller asking to use one of an
// owner's data categories for a stated purpose.
type Request struct {
	OwnerID    id.OwnerID
	CallerID   id.CallerID
	CallerName string
	Purpose    policy.Purpose
	Category   policy.DataCategory
}

// Result is the evaluated decision together with the identifier of its
// audit entry. LogID is always set: a decision is only returned once its
// record is durable.
type Result struct {
	Outcome policy.Outcome
	Reason  string
	LogID   uuid.UUID
}

// Allowed reports whether the attempt may proceed.
func (r Result) Allowed() bool {
	return r.Outcome == policy.OutcomeAllow
}
