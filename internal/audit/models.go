package audit

import (
	"time"

	"github.com/google/uuid"

	"udcf/internal/policy"
	id "udcf/pkg/domain"
	dErrors "udcf/pkg/domain-errors"
)

// Entry is one immutable record of a single access decision. Entries are
// never updated or deleted after creation; audit integrity depends on it.
//
// Seq is assigned by the store and is strictly increasing in append order.
// It defines the total order of the log: wall-clock timestamps alone cannot
// break ties between near-simultaneous appends.
//
// Owner and caller are distinct typed fields so the two identity namespaces
// cannot collide in queries.
type Entry struct {
	ID         uuid.UUID
	Seq        uint64
	Timestamp  time.Time
	OwnerID    id.OwnerID
	CallerID   id.CallerID
	CallerName string
	Purpose    policy.Purpose
	Category   policy.DataCategory
	Outcome    policy.Outcome
	Reason     string

	// Trail enrichment, recorded when available.
	RequestID string
	Client    string
}

// EntryInput carries the caller-supplied fields of an entry. ID, Seq, and
// Timestamp are generated at append time.
type EntryInput struct {
	OwnerID    id.OwnerID
	CallerID   id.CallerID
	CallerName string
	Purpose    policy.Purpose
	Category   policy.DataCategory
	Outcome    policy.Outcome
	Reason     string
	RequestID  string
	Client     string
}

// Validate enforces entry invariants before anything reaches storage.
// A decision without a reason is never a valid state.
func (in EntryInput) Validate() error {
	if in.OwnerID.IsEmpty() {
		return dErrors.New(dErrors.CodeInvariantViolation, "owner ID required")
	}
	if in.CallerID.IsEmpty() {
		return dErrors.New(dErrors.CodeInvariantViolation, "caller ID required")
	}
	if in.Outcome != policy.OutcomeAllow && in.Outcome != policy.OutcomeBlock {
		return dErrors.New(dErrors.CodeInvariantViolation, "outcome must be ALLOW or BLOCK")
	}
	if in.Reason == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "decision reason required")
	}
	return nil
}

// Filter narrows List queries. Nil fields match everything.
type Filter struct {
	Owner   *id.OwnerID
	Outcome *policy.Outcome
}

// Matches reports whether the entry satisfies the filter.
func (f Filter) Matches(entry Entry) bool {
	if f.Owner != nil && entry.OwnerID != *f.Owner {
		return false
	}
	if f.Outcome != nil && entry.Outcome != *f.Outcome {
		return false
	}
	return true
}

// Summary aggregates decision counts over a window of the log.
type Summary struct {
	Total   int64
	Allowed int64
	Blocked int64
}
