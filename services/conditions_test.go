package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func sampleBaseline() Conditions {
	return Conditions{
		Remuneration: &Remuneration{
			PerDate: &PerDateFee{
				AmountCents: intPtr(3000),
				Options: []FeeOption{
					{Label: "Cours seul", AmountCents: 3000},
					{Label: "Cours + soirée", AmountCents: 4500},
				},
			},
			PerWeek: &PerWeekFees{
				Calm: &PerWeekFee{Performances: intPtr(2), AmountCents: intPtr(80000)},
				Peak: &PerWeekFee{Performances: intPtr(4), AmountCents: intPtr(120000)},
			},
		},
		Lodging: &Lodging{
			Included: boolPtr(true),
			Details:  "Chambre chez l'habitant",
		},
		Venues:   []Entry{{Label: "Salle", Value: "Le Bal Perdu"}},
		Contacts: []Entry{{Label: "Référent", Value: "Camille"}},
	}
}

func TestMergeIdentityOnEmptyOverride(t *testing.T) {
	baseline := sampleBaseline()
	merged := MergeConditions(baseline, Conditions{})
	assert.Equal(t, baseline, merged)
}

func TestMergeNestedFieldPreservesSiblings(t *testing.T) {
	baseline := sampleBaseline()
	override := Conditions{
		Remuneration: &Remuneration{
			PerDate: &PerDateFee{AmountCents: intPtr(5000)},
		},
	}

	merged := MergeConditions(baseline, override)

	require.NotNil(t, merged.Remuneration)
	require.NotNil(t, merged.Remuneration.PerDate)
	assert.Equal(t, 5000, *merged.Remuneration.PerDate.AmountCents)

	// Sibling fields inside remuneration fall back to the baseline
	assert.Equal(t, baseline.Remuneration.PerDate.Options, merged.Remuneration.PerDate.Options)
	assert.Equal(t, baseline.Remuneration.PerWeek, merged.Remuneration.PerWeek)

	// Other sections are untouched
	assert.Equal(t, baseline.Lodging, merged.Lodging)
	assert.Equal(t, baseline.Venues, merged.Venues)
}

func TestMergeIsStableUnderRemerge(t *testing.T) {
	baseline := sampleBaseline()
	override := Conditions{
		Remuneration: &Remuneration{
			PerDate: &PerDateFee{AmountCents: intPtr(5000)},
			IsNet:   boolPtr(false),
		},
		Venues: []Entry{{Label: "Salle", Value: "Nouvelle salle"}},
	}

	once := MergeConditions(baseline, override)
	twice := MergeConditions(baseline, once)

	// Re-merging the merged result changes nothing: override fields
	// always take precedence over the baseline
	assert.Equal(t, once, twice)
}

func TestMergeOptionsReplaceWholesale(t *testing.T) {
	baseline := sampleBaseline()
	override := Conditions{
		Remuneration: &Remuneration{
			PerDate: &PerDateFee{
				Options: []FeeOption{{Label: "Forfait unique", AmountCents: 6000}},
			},
		},
	}

	merged := MergeConditions(baseline, override)

	require.NotNil(t, merged.Remuneration.PerDate)
	assert.Len(t, merged.Remuneration.PerDate.Options, 1)
	assert.Equal(t, "Forfait unique", merged.Remuneration.PerDate.Options[0].Label)
	// The flat amount still falls back to the baseline
	assert.Equal(t, 3000, *merged.Remuneration.PerDate.AmountCents)
}

func TestMergeSectionReplacement(t *testing.T) {
	baseline := sampleBaseline()
	override := Conditions{
		Lodging: &Lodging{Included: boolPtr(false)},
	}

	merged := MergeConditions(baseline, override)

	// Top-level sections are shallow: the override section wins wholesale
	require.NotNil(t, merged.Lodging)
	assert.False(t, *merged.Lodging.Included)
	assert.Empty(t, merged.Lodging.Details)
}

func TestParseConditionsMalformed(t *testing.T) {
	assert.Equal(t, Conditions{}, ParseConditions([]byte(`{"remuneration": [1,2,3]}`)))
	assert.Equal(t, Conditions{}, ParseConditions([]byte(`not json`)))
	assert.Equal(t, Conditions{}, ParseConditions(nil))
}

func TestParseConditionsRoundTrip(t *testing.T) {
	raw := []byte(`{"remuneration":{"per_date":{"amount_cents":5000},"is_net":true},"lodging":{"included":true}}`)
	cond := ParseConditions(raw)
	require.NotNil(t, cond.Remuneration)
	require.NotNil(t, cond.Remuneration.PerDate)
	assert.Equal(t, 5000, *cond.Remuneration.PerDate.AmountCents)
	assert.True(t, *cond.Remuneration.IsNet)
	assert.True(t, *cond.Lodging.Included)
}

func TestMergeNotesPointerSemantics(t *testing.T) {
	baseline := sampleBaseline()
	baseline.Notes = strPtr("Prévoir une sono")

	// Absent notes keep the baseline
	merged := MergeConditions(baseline, Conditions{})
	require.NotNil(t, merged.Notes)
	assert.Equal(t, "Prévoir une sono", *merged.Notes)

	// A present empty string clears them
	merged = MergeConditions(baseline, Conditions{Notes: strPtr("")})
	require.NotNil(t, merged.Notes)
	assert.Equal(t, "", *merged.Notes)

	// A present value replaces them
	merged = MergeConditions(baseline, Conditions{Notes: strPtr("Arriver avant 18h")})
	assert.Equal(t, "Arriver avant 18h", *merged.Notes)
}
