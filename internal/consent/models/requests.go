package models

import (
	"encoding/json"
	"fmt"

	"udcf/internal/policy"
	"udcf/internal/sentinel"
)

// ReplaceRequest carries the full consent record for an owner. Every known
// category must be present: the write replaces the whole record, so a partial
// body would silently revoke whatever it omitted.
type ReplaceRequest struct {
	Categories map[string]bool `json:"-"`
}

// UnmarshalJSON decodes the request body as a flat category-to-flag object.
func (r *ReplaceRequest) UnmarshalJSON(data []byte) error {
	var categories map[string]bool
	if err := json.Unmarshal(data, &categories); err != nil {
		return err
	}
	r.Categories = categories
	return nil
}

// Validate checks that the request is well-formed: only known categories,
// and all of them present.
func (r *ReplaceRequest) Validate() error {
	if r == nil || r.Categories == nil {
		return fmt.Errorf("request body is required: %w", sentinel.ErrBadRequest)
	}
	for raw := range r.Categories {
		if !policy.DataCategory(raw).IsValid() {
			return fmt.Errorf("unknown data category %q: %w", raw, sentinel.ErrInvalidInput)
		}
	}
	for category := range policy.ValidCategories {
		if _, ok := r.Categories[string(category)]; !ok {
			return fmt.Errorf("missing data category %q: %w", category, sentinel.ErrInvalidInput)
		}
	}
	return nil
}

// ToConsent converts the validated request into a policy snapshot.
func (r *ReplaceRequest) ToConsent() policy.Consent {
	consent := make(policy.Consent, len(r.Categories))
	for raw, granted := range r.Categories {
		consent[policy.DataCategory(raw)] = granted
	}
	return consent
}
