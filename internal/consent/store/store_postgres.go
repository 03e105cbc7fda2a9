package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"udcf/internal/consent/models"
	"udcf/internal/policy"
	"udcf/internal/sentinel"
	id "udcf/pkg/domain"
)

// PostgresStore persists consent records in PostgreSQL. The record occupies a
// single row, so the wholesale-replace invariant falls out of row-level
// atomicity without explicit locking.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed consent store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Replace(ctx context.Context, record *models.Record) error {
	if record == nil {
		return fmt.Errorf("consent record is required")
	}
	query := `
		INSERT INTO consents (owner_id, profile_granted, usage_granted, analytics_granted, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner_id) DO UPDATE SET
			profile_granted   = EXCLUDED.profile_granted,
			usage_granted     = EXCLUDED.usage_granted,
			analytics_granted = EXCLUDED.analytics_granted,
			updated_at        = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		record.OwnerID.String(),
		record.Categories.Granted(policy.CategoryProfile),
		record.Categories.Granted(policy.CategoryUsage),
		record.Categories.Granted(policy.CategoryAnalytics),
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("replace consent record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByOwner(ctx context.Context, ownerID id.OwnerID) (*models.Record, error) {
	query := `
		SELECT profile_granted, usage_granted, analytics_granted, updated_at
		FROM consents
		WHERE owner_id = $1
	`
	record := &models.Record{OwnerID: ownerID, Categories: make(policy.Consent, 3)}
	var profile, usage, analytics bool
	err := s.db.QueryRowContext(ctx, query, ownerID.String()).
		Scan(&profile, &usage, &analytics, &record.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find consent record: %w", err)
	}

	record.Categories[policy.CategoryProfile] = profile
	record.Categories[policy.CategoryUsage] = usage
	record.Categories[policy.CategoryAnalytics] = analytics
	return record, nil
}
