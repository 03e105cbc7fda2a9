package policy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullConsent() Consent {
	return Consent{
		CategoryProfile:   true,
		CategoryUsage:     true,
		CategoryAnalytics: true,
	}
}

func TestEvaluate_ConsentGateBlocksRegardlessOfPurpose(t *testing.T) {
	engine := NewEngine()

	for purpose := range ValidPurposes {
		for category := range ValidCategories {
			t.Run(fmt.Sprintf("%s/%s", purpose, category), func(t *testing.T) {
				// Explicitly false and absent must behave identically.
				explicit := Consent{category: false}
				for _, consent := range []Consent{explicit, nil} {
					decision := engine.Evaluate(consent, purpose, category)
					assert.Equal(t, OutcomeBlock, decision.Outcome)
					assert.Equal(t, fmt.Sprintf("owner has not consented to %s data access", category), decision.Reason)
				}
			})
		}
	}
}

func TestEvaluate_ConsentGateShortCircuitsPurposeGate(t *testing.T) {
	engine := NewEngine()

	// marketing/usage fails both gates; only the consent reason may surface.
	decision := engine.Evaluate(Consent{CategoryUsage: false}, PurposeMarketing, CategoryUsage)
	require.Equal(t, OutcomeBlock, decision.Outcome)
	assert.Contains(t, decision.Reason, "has not consented")
	assert.NotContains(t, decision.Reason, "not authorized")
}

func TestEvaluate_PurposeGate(t *testing.T) {
	engine := NewEngine()

	allowed := map[Purpose][]DataCategory{
		PurposeAnalytics:       {CategoryAnalytics, CategoryUsage},
		PurposePersonalization: {CategoryProfile, CategoryUsage},
		PurposeMarketing:       {CategoryProfile},
		PurposeAITraining:      {CategoryAnalytics, CategoryUsage},
	}

	for purpose := range ValidPurposes {
		for category := range ValidCategories {
			t.Run(fmt.Sprintf("%s/%s", purpose, category), func(t *testing.T) {
				decision := engine.Evaluate(fullConsent(), purpose, category)

				wantAllow := false
				for _, c := range allowed[purpose] {
					if c == category {
						wantAllow = true
					}
				}

				if wantAllow {
					assert.Equal(t, OutcomeAllow, decision.Outcome)
					assert.Equal(t, "consent verified and purpose authorized", decision.Reason)
				} else {
					assert.Equal(t, OutcomeBlock, decision.Outcome)
					assert.Contains(t, decision.Reason, "not authorized")
				}
			})
		}
	}
}

func TestEvaluate_UnknownPurposeDeniesByDefault(t *testing.T) {
	engine := NewEngine()

	for _, purpose := range []Purpose{"", "unknown", "Analytics", "debugging"} {
		decision := engine.Evaluate(fullConsent(), purpose, CategoryUsage)
		require.Equal(t, OutcomeBlock, decision.Outcome, "purpose %q must block", purpose)
		assert.Contains(t, decision.Reason, "not authorized")
	}
}

func TestEvaluate_Scenarios(t *testing.T) {
	engine := NewEngine()
	owner := Consent{CategoryProfile: true, CategoryUsage: false, CategoryAnalytics: false}

	t.Run("marketing with profile consent allows", func(t *testing.T) {
		decision := engine.Evaluate(owner, PurposeMarketing, CategoryProfile)
		assert.Equal(t, OutcomeAllow, decision.Outcome)
		assert.Contains(t, decision.Reason, "authorized")
	})

	t.Run("analytics without usage consent blocks on consent gate", func(t *testing.T) {
		decision := engine.Evaluate(owner, PurposeAnalytics, CategoryUsage)
		assert.Equal(t, OutcomeBlock, decision.Outcome)
		assert.Contains(t, decision.Reason, "has not consented")
	})

	t.Run("ai_training with profile consent blocks on purpose gate", func(t *testing.T) {
		decision := engine.Evaluate(owner, PurposeAITraining, CategoryProfile)
		assert.Equal(t, OutcomeBlock, decision.Outcome)
		assert.Contains(t, decision.Reason, "not authorized")
	})
}

func TestEvaluate_EveryDecisionHasAReason(t *testing.T) {
	engine := NewEngine()

	for purpose := range ValidPurposes {
		for category := range ValidCategories {
			for _, consent := range []Consent{nil, fullConsent()} {
				decision := engine.Evaluate(consent, purpose, category)
				assert.NotEmpty(t, decision.Reason)
			}
		}
	}
}

func TestEvaluate_Determinism(t *testing.T) {
	engine := NewEngine()
	consent := Consent{CategoryUsage: true}

	first := engine.Evaluate(consent, PurposeAnalytics, CategoryUsage)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, engine.Evaluate(consent, PurposeAnalytics, CategoryUsage))
	}
}

func TestEngine_WithRulesOverride(t *testing.T) {
	engine := NewEngine(WithRules(Rules{
		PurposeMarketing: {CategoryUsage},
	}))

	decision := engine.Evaluate(fullConsent(), PurposeMarketing, CategoryUsage)
	assert.Equal(t, OutcomeAllow, decision.Outcome)

	// Purposes absent from the override authorize nothing.
	decision = engine.Evaluate(fullConsent(), PurposeAnalytics, CategoryAnalytics)
	assert.Equal(t, OutcomeBlock, decision.Outcome)
}

func TestPurposeAndCategoryEnums(t *testing.T) {
	assert.True(t, PurposeAnalytics.IsValid())
	assert.False(t, Purpose("telemetry").IsValid())
	assert.True(t, CategoryAnalytics.IsValid())
	assert.False(t, DataCategory("location").IsValid())
}
