// Package policy implements the purpose-to-category authorization engine.
// Evaluation is a pure function over a consent snapshot: no I/O, no state,
// safe for unlimited concurrent use.
package policy

import "fmt"

// Purpose labels why data is being requested. Purpose binding allows
// per-purpose authorization without affecting other flows.
type Purpose string

const (
	PurposeAnalytics       Purpose = "analytics"
	PurposePersonalization Purpose = "personalization"
	PurposeMarketing       Purpose = "marketing"
	PurposeAITraining      Purpose = "ai_training"
)

// ValidPurposes is the single source of truth for all valid request purposes.
var ValidPurposes = map[Purpose]bool{
	PurposeAnalytics:       true,
	PurposePersonalization: true,
	PurposeMarketing:       true,
	PurposeAITraining:      true,
}

// IsValid checks if the purpose is one of the supported enum values.
func (p Purpose) IsValid() bool {
	return ValidPurposes[p]
}

// DataCategory labels the class of owner data being requested.
// The "analytics" name is shared with a Purpose value; the two enums are
// compared against disjoint domains so no collision occurs.
type DataCategory string

const (
	CategoryProfile   DataCategory = "profile"
	CategoryUsage     DataCategory = "usage"
	CategoryAnalytics DataCategory = "analytics"
)

// ValidCategories is the single source of truth for all valid data categories.
var ValidCategories = map[DataCategory]bool{
	CategoryProfile:   true,
	CategoryUsage:     true,
	CategoryAnalytics: true,
}

// IsValid checks if the data category is one of the supported enum values.
func (c DataCategory) IsValid() bool {
	return ValidCategories[c]
}

// Outcome is the terminal result of an evaluation.
type Outcome string

const (
	OutcomeAllow Outcome = "ALLOW"
	OutcomeBlock Outcome = "BLOCK"
)

// Decision pairs an outcome with a human-readable reason. Every decision
// carries a non-empty reason; "blocked with no reason" is never a valid state.
type Decision struct {
	Outcome Outcome
	Reason  string
}

// Consent is a read-only snapshot of an owner's granted categories.
// An absent key means not granted; the zero value (nil map) grants nothing.
type Consent map[DataCategory]bool

// Granted reports whether the owner has consented to the category.
func (c Consent) Granted(category DataCategory) bool {
	return c[category]
}

// Clone returns an independent copy of the snapshot.
func (c Consent) Clone() Consent {
	if c == nil {
		return nil
	}
	out := make(Consent, len(c))
	for category, granted := range c {
		out[category] = granted
	}
	return out
}

// Rules maps each purpose to the set of data categories it may be used for.
// A purpose absent from the table authorizes nothing.
type Rules map[Purpose][]DataCategory

// DefaultRules is the built-in purpose authorization table.
var DefaultRules = Rules{
	PurposeAnalytics:       {CategoryAnalytics, CategoryUsage},
	PurposePersonalization: {CategoryProfile, CategoryUsage},
	PurposeMarketing:       {CategoryProfile},
	PurposeAITraining:      {CategoryAnalytics, CategoryUsage},
}

// Engine evaluates access requests against a consent snapshot and the
// purpose authorization table. It holds no mutable state.
type Engine struct {
	rules Rules
}

// Option configures the Engine.
type Option func(*Engine)

// WithRules overrides the built-in authorization table. Deployments that load
// policy from configuration can inject their own table; the evaluation
// semantics (deny-by-default) are unchanged.
func WithRules(rules Rules) Option {
	return func(e *Engine) {
		if rules != nil {
			e.rules = rules
		}
	}
}

// NewEngine constructs an Engine using DefaultRules unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{rules: DefaultRules}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the two-stage gate and returns a Decision.
//
// The consent gate runs first and short-circuits: when the owner has not
// granted the requested category, the purpose gate is never consulted and
// the returned reason is always the consent-failure reason. An unknown
// purpose yields an empty allowed set and therefore blocks; there is no
// error path and no allow-by-default.
func (e *Engine) Evaluate(consent Consent, purpose Purpose, category DataCategory) Decision {
	if !consent.Granted(category) {
		return Decision{
			Outcome: OutcomeBlock,
			Reason:  fmt.Sprintf("owner has not consented to %s data access", category),
		}
	}

	if !e.authorized(purpose, category) {
		return Decision{
			Outcome: OutcomeBlock,
			Reason:  fmt.Sprintf("purpose %q is not authorized for %q data", purpose, category),
		}
	}

	return Decision{
		Outcome: OutcomeAllow,
		Reason:  "consent verified and purpose authorized",
	}
}

func (e *Engine) authorized(purpose Purpose, category DataCategory) bool {
	for _, allowed := range e.rules[purpose] {
		if allowed == category {
			return true
		}
	}
	return false
}
