package audit

import (
	"context"
	"time"
)

// Store defines the persistence interface for the decision log.
//
// Error Contract:
// - Append assigns Seq and returns nil on success; any failure means the
//   entry is NOT durable and MUST fail the caller's access attempt
// - List returns entries in reverse-chronological order (highest Seq first)
//   without mutating underlying storage order
// - Summarize counts entries with Timestamp >= since; the zero time counts
//   the whole log
//
// There is deliberately no update or delete operation.
type Store interface {
	Append(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]Entry, error)
	Summarize(ctx context.Context, since time.Time) (Summary, error)
}
