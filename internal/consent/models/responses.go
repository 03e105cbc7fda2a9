package models

import (
	"time"

	"udcf/internal/policy"
)

// RecordResponse is the wire form of a consent record.
type RecordResponse struct {
	OwnerID    string          `json:"owner_id"`
	Categories map[string]bool `json:"categories"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}

// ToResponse converts a domain record to its wire form. The default record
// has no update time; the field is omitted rather than zero-valued.
func ToResponse(record *Record) RecordResponse {
	categories := make(map[string]bool, len(policy.ValidCategories))
	for category := range policy.ValidCategories {
		categories[string(category)] = record.Categories.Granted(category)
	}

	resp := RecordResponse{
		OwnerID:    record.OwnerID.String(),
		Categories: categories,
	}
	if !record.UpdatedAt.IsZero() {
		updatedAt := record.UpdatedAt.UTC()
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
