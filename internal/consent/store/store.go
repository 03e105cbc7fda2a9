package store

import (
	"context"

	"udcf/internal/consent/models"
	id "udcf/pkg/domain"
)

// Store defines the persistence interface for consent records.
//
// Error Contract:
// - FindByOwner returns sentinel.ErrNotFound when no record exists; the
//   service layer substitutes the all-false default
// - Replace returns nil on success or wrapped errors on infrastructure failure
// - Replace must swap the whole record atomically: a concurrent reader sees
//   either the old record or the new one, never a mix
type Store interface {
	Replace(ctx context.Context, record *models.Record) error
	FindByOwner(ctx context.Context, ownerID id.OwnerID) (*models.Record, error)
}
