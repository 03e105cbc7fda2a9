package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"udcf/internal/policy"
	id "udcf/pkg/domain"
)

// PostgresStore persists the decision log in PostgreSQL. The seq column is a
// BIGSERIAL, so the database assigns the total order.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed decision log store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts the entry and reads back the assigned sequence number.
// The insert is idempotent on the entry ID: replaying an append after a
// network failure does not duplicate the record.
func (s *PostgresStore) Append(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO audit_entries (
			id, ts, owner_id, caller_id, caller_name,
			purpose, category, outcome, reason, request_id, client
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
		RETURNING seq
	`
	err := s.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.Timestamp,
		entry.OwnerID.String(),
		entry.CallerID.String(),
		entry.CallerName,
		string(entry.Purpose),
		string(entry.Category),
		string(entry.Outcome),
		entry.Reason,
		entry.RequestID,
		entry.Client,
	).Scan(&entry.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		// Conflict on ID: the entry is already durable, fetch its seq.
		return s.db.QueryRowContext(ctx,
			`SELECT seq FROM audit_entries WHERE id = $1`, entry.ID,
		).Scan(&entry.Seq)
	}
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// List returns matching entries most recent first.
func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]Entry, error) {
	query := `
		SELECT seq, id, ts, owner_id, caller_id, caller_name,
		       purpose, category, outcome, reason, request_id, client
		FROM audit_entries
		WHERE ($1::text IS NULL OR owner_id = $1)
		  AND ($2::text IS NULL OR outcome = $2)
		ORDER BY seq DESC
	`
	var owner, outcome *string
	if filter.Owner != nil {
		v := filter.Owner.String()
		owner = &v
	}
	if filter.Outcome != nil {
		v := string(*filter.Outcome)
		outcome = &v
	}

	rows, err := s.db.QueryContext(ctx, query, owner, outcome)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var ownerID, callerID, purpose, category, outcomeVal string
		if err := rows.Scan(
			&entry.Seq, &entry.ID, &entry.Timestamp, &ownerID, &callerID,
			&entry.CallerName, &purpose, &category, &outcomeVal,
			&entry.Reason, &entry.RequestID, &entry.Client,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.OwnerID = id.OwnerID(ownerID)
		entry.CallerID = id.CallerID(callerID)
		entry.Purpose = policy.Purpose(purpose)
		entry.Category = policy.DataCategory(category)
		entry.Outcome = policy.Outcome(outcomeVal)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Summarize counts decisions with ts >= since in a single aggregate query.
func (s *PostgresStore) Summarize(ctx context.Context, since time.Time) (Summary, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE outcome = 'ALLOW'),
		       COUNT(*) FILTER (WHERE outcome = 'BLOCK')
		FROM audit_entries
		WHERE ts >= $1
	`
	var summary Summary
	err := s.db.QueryRowContext(ctx, query, since).
		Scan(&summary.Total, &summary.Allowed, &summary.Blocked)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize audit entries: %w", err)
	}
	return summary, nil
}
