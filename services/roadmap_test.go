package services

import (
	"testing"
	"time"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func multiDatesProgram(conditions string) models.Program {
	return models.Program{
		ID:         1,
		Name:       "Tournée printemps",
		Kind:       models.ProgramMultiDates,
		Conditions: datatypes.JSON(conditions),
	}
}

func residencyProgram(conditions string) models.Program {
	return models.Program{
		ID:         2,
		Name:       "Résidence d'été",
		Kind:       models.ProgramWeeklyResidency,
		Conditions: datatypes.JSON(conditions),
	}
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}

func TestRoadmapPerDateFee(t *testing.T) {
	program := multiDatesProgram(`{"remuneration":{"per_date":{"amount_cents":5000},"is_net":true}}`)
	item := models.ProgramItem{ID: 10, ProgramID: 1, Kind: models.ItemDate, StartDate: mustDay(t, "2025-03-10")}

	roadmap := BuildRoadmap(program, item, nil)

	require.Len(t, roadmap.Fees, 1)
	assert.Equal(t, "Cachet par date", roadmap.Fees[0].Label)
	assert.Equal(t, "50,00 € (net)", roadmap.Fees[0].Value)
}

func TestRoadmapBrutSuffix(t *testing.T) {
	program := multiDatesProgram(`{"remuneration":{"per_date":{"amount_cents":5000},"is_net":false}}`)
	item := models.ProgramItem{ID: 10, Kind: models.ItemDate, StartDate: mustDay(t, "2025-03-10")}

	roadmap := BuildRoadmap(program, item, nil)

	require.Len(t, roadmap.Fees, 1)
	assert.Equal(t, "50,00 € (brut)", roadmap.Fees[0].Value)
}

func TestRoadmapMissingAmountRendersPlaceholder(t *testing.T) {
	program := multiDatesProgram(`{"remuneration":{"per_date":{}}}`)
	item := models.ProgramItem{ID: 10, Kind: models.ItemDate, StartDate: mustDay(t, "2025-03-10")}

	roadmap := BuildRoadmap(program, item, nil)

	require.Len(t, roadmap.Fees, 1)
	assert.Equal(t, "—", roadmap.Fees[0].Value)
}

func TestRoadmapBookingOptionWins(t *testing.T) {
	program := multiDatesProgram(`{"remuneration":{"per_date":{"amount_cents":5000}}}`)
	item := models.ProgramItem{ID: 10, Kind: models.ItemDate, StartDate: mustDay(t, "2025-03-10")}
	amount := 7500
	booking := &models.Booking{
		ID:                 3,
		ItemID:             10,
		Status:             models.BookingStatusConfirmed,
		OptionLabel:        "Cours + soirée",
		OptionAmountCents:  &amount,
		ConditionsSnapshot: datatypes.JSON(`{"remuneration":{"per_date":{"amount_cents":5000}}}`),
	}

	roadmap := BuildRoadmap(program, item, booking)

	require.Len(t, roadmap.Fees, 1)
	assert.Equal(t, "Cours + soirée", roadmap.Fees[0].Label)
	assert.Equal(t, "75,00 € (net)", roadmap.Fees[0].Value)
}

func TestRoadmapSnapshotWinsOverLiveConditions(t *testing.T) {
	// The program's live conditions changed after confirmation; the
	// booking keeps what was agreed.
	program := multiDatesProgram(`{"remuneration":{"per_date":{"amount_cents":9900}}}`)
	item := models.ProgramItem{ID: 10, Kind: models.ItemDate, StartDate: mustDay(t, "2025-03-10")}
	booking := &models.Booking{
		ID:                 3,
		ConditionsSnapshot: datatypes.JSON(`{"remuneration":{"per_date":{"amount_cents":5000}}}`),
	}

	roadmap := BuildRoadmap(program, item, booking)

	require.Len(t, roadmap.Fees, 1)
	assert.Equal(t, "50,00 € (net)", roadmap.Fees[0].Value)
}

func TestRoadmapWeeklyFeeByWeekType(t *testing.T) {
	conditions := `{"remuneration":{"per_week":{"calm":{"performances":2,"amount_cents":80000},"peak":{"performances":4,"amount_cents":95000}}}}`
	end := mustDay(t, "2025-01-12")

	calmItem := models.ProgramItem{
		ID: 20, Kind: models.ItemWeek,
		StartDate: mustDay(t, "2025-01-05"), EndDate: &end,
		Metadata: datatypes.JSON(`{"week_type":"CALM"}`),
	}
	roadmap := BuildRoadmap(residencyProgram(conditions), calmItem, nil)
	require.Len(t, roadmap.Fees, 1)
	assert.Equal(t, "Semaine calme", roadmap.Fees[0].Label)
	assert.Equal(t, "2 représentations, 800,00 € (net)", roadmap.Fees[0].Value)

	peakItem := calmItem
	peakItem.Metadata = datatypes.JSON(`{"week_type":"PEAK"}`)
	roadmap = BuildRoadmap(residencyProgram(conditions), peakItem, nil)
	require.Len(t, roadmap.Fees, 1)
	assert.Equal(t, "Semaine forte", roadmap.Fees[0].Label)

	// No week type on the item: both profiles are shown
	bothItem := calmItem
	bothItem.Metadata = nil
	roadmap = BuildRoadmap(residencyProgram(conditions), bothItem, nil)
	require.Len(t, roadmap.Fees, 2)
	assert.Equal(t, "Semaine calme", roadmap.Fees[0].Label)
	assert.Equal(t, "Semaine forte", roadmap.Fees[1].Label)
}

func TestRoadmapScheduleSynthesis(t *testing.T) {
	program := multiDatesProgram(`{}`)
	item := models.ProgramItem{ID: 10, Kind: models.ItemDate, StartDate: mustDay(t, "2025-03-10")}

	roadmap := BuildRoadmap(program, item, nil)
	require.Len(t, roadmap.Schedule, 1)
	assert.Equal(t, "Date", roadmap.Schedule[0].Label)
	assert.Equal(t, "10/03/2025", roadmap.Schedule[0].Value)

	end := mustDay(t, "2025-01-12")
	weekItem := models.ProgramItem{
		ID: 20, Kind: models.ItemWeek,
		StartDate: mustDay(t, "2025-01-05"), EndDate: &end,
	}
	roadmap = BuildRoadmap(residencyProgram(`{}`), weekItem, nil)
	require.Len(t, roadmap.Schedule, 1)
	assert.Equal(t, "Semaine", roadmap.Schedule[0].Label)
	assert.Equal(t, "05/01/2025 → 12/01/2025, semaine complète", roadmap.Schedule[0].Value)
}

func TestRoadmapExplicitScheduleUsedVerbatim(t *testing.T) {
	program := multiDatesProgram(`{}`)
	item := models.ProgramItem{
		ID: 10, Kind: models.ItemDate, StartDate: mustDay(t, "2025-03-10"),
		Metadata: datatypes.JSON(`{"schedule":[{"label":"Balance","value":"16h00"},{"label":"Concert","value":"21h00"}]}`),
	}

	roadmap := BuildRoadmap(program, item, nil)
	require.Len(t, roadmap.Schedule, 2)
	assert.Equal(t, Entry{Label: "Balance", Value: "16h00"}, roadmap.Schedule[0])
	assert.Equal(t, Entry{Label: "Concert", Value: "21h00"}, roadmap.Schedule[1])
}

func TestRoadmapListSectionsConcatAndFilter(t *testing.T) {
	program := multiDatesProgram(`{"venues":[{"label":"Salle","value":"Le Bal Perdu"},{"label":"  ","value":"  "}],"contacts":[{"label":"Référent","value":"Camille"}]}`)
	item := models.ProgramItem{
		ID: 10, Kind: models.ItemDate, StartDate: mustDay(t, "2025-03-10"),
		Metadata: datatypes.JSON(`{"venues":[{"label":"Loge","value":"2e étage"}]}`),
	}

	roadmap := BuildRoadmap(program, item, nil)

	// Program entries first, then item overrides; blank entries dropped
	require.Len(t, roadmap.Venues, 2)
	assert.Equal(t, "Le Bal Perdu", roadmap.Venues[0].Value)
	assert.Equal(t, "Loge", roadmap.Venues[1].Label)
	require.Len(t, roadmap.Contacts, 1)
}

func TestRoadmapLodgingAndMeals(t *testing.T) {
	program := multiDatesProgram(`{
		"lodging":{"included":true,"companion_included":true,"details":"Chambre chez l'habitant","entries":[{"label":"Adresse","value":"12 rue des Lilas"}]},
		"meals":{"included":false,"details":"Restaurant partenaire le soir"}
	}`)
	item := models.ProgramItem{ID: 10, Kind: models.ItemDate, StartDate: mustDay(t, "2025-03-10")}

	roadmap := BuildRoadmap(program, item, nil)

	require.Len(t, roadmap.Lodging, 4)
	assert.Equal(t, Entry{Label: "Hébergement", Value: "Inclus"}, roadmap.Lodging[0])
	assert.Equal(t, "Adresse", roadmap.Lodging[1].Label)
	assert.Equal(t, Entry{Label: "Détails", Value: "Chambre chez l'habitant"}, roadmap.Lodging[2])
	assert.Equal(t, Entry{Label: "Accompagnant", Value: "Inclus"}, roadmap.Lodging[3])

	require.Len(t, roadmap.Meals, 2)
	assert.Equal(t, Entry{Label: "Repas", Value: "Non inclus"}, roadmap.Meals[0])
	assert.Equal(t, Entry{Label: "Détails", Value: "Restaurant partenaire le soir"}, roadmap.Meals[1])
}

func TestRoadmapDeterministic(t *testing.T) {
	program := residencyProgram(`{
		"remuneration":{"per_week":{"calm":{"performances":2,"amount_cents":80000}}},
		"lodging":{"included":true},
		"venues":[{"label":"Salle","value":"Le Bal Perdu"}]
	}`)
	end := mustDay(t, "2025-01-12")
	item := models.ProgramItem{
		ID: 20, Kind: models.ItemWeek,
		StartDate: mustDay(t, "2025-01-05"), EndDate: &end,
		Metadata: datatypes.JSON(`{"week_type":"CALM"}`),
	}

	first := BuildRoadmap(program, item, nil)
	second := BuildRoadmap(program, item, nil)
	assert.Equal(t, first, second)
}

func TestRoadmapMalformedOverrideFallsBack(t *testing.T) {
	program := multiDatesProgram(`{"remuneration":{"per_date":{"amount_cents":5000}}}`)
	program.ConditionsOverride = datatypes.JSON(`{{{`)
	item := models.ProgramItem{ID: 10, Kind: models.ItemDate, StartDate: mustDay(t, "2025-03-10")}

	roadmap := BuildRoadmap(program, item, nil)
	require.Len(t, roadmap.Fees, 1)
	assert.Equal(t, "50,00 € (net)", roadmap.Fees[0].Value)
}
