package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"
)

// Roadmap is the derived, presentation-ready summary of an item's
// practical details. It is regenerated on demand and never persisted.
type Roadmap struct {
	Schedule  []Entry `json:"schedule"`
	Fees      []Entry `json:"fees"`
	Venues    []Entry `json:"venues"`
	Lodging   []Entry `json:"lodging"`
	Meals     []Entry `json:"meals"`
	Access    []Entry `json:"access"`
	Logistics []Entry `json:"logistics"`
	Contacts  []Entry `json:"contacts"`
}

// ItemMetadata is the parsed form of ProgramItem.Metadata: the week
// type plus per-item overrides of the list sections.
type ItemMetadata struct {
	WeekType  string  `json:"week_type,omitempty"` // CALM | PEAK
	Schedule  []Entry `json:"schedule,omitempty"`
	Venues    []Entry `json:"venues,omitempty"`
	Contacts  []Entry `json:"contacts,omitempty"`
	Access    []Entry `json:"access,omitempty"`
	Logistics []Entry `json:"logistics,omitempty"`
}

// ParseItemMetadata tolerates malformed payloads the same way
// ParseConditions does.
func ParseItemMetadata(raw []byte) ItemMetadata {
	var m ItemMetadata
	if len(raw) == 0 {
		return m
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return ItemMetadata{}
	}
	return m
}

const amountPlaceholder = "—"

// BuildRoadmap assembles the roadmap for one item. When a booking is
// given its frozen conditions snapshot wins over the program's live
// conditions, so later edits never rewrite what was agreed. Pure
// function: identical inputs always produce identical output.
func BuildRoadmap(program models.Program, item models.ProgramItem, booking *models.Booking) Roadmap {
	var cond Conditions
	if booking != nil && len(booking.ConditionsSnapshot) > 0 {
		cond = ParseConditions([]byte(booking.ConditionsSnapshot))
	} else {
		cond = MergeConditions(
			ParseConditions([]byte(program.Conditions)),
			ParseConditions([]byte(program.ConditionsOverride)))
	}
	meta := ParseItemMetadata([]byte(item.Metadata))

	return Roadmap{
		Schedule:  scheduleEntries(program, item, meta),
		Fees:      feeEntries(program, meta, cond, booking),
		Venues:    concatEntries(cond.Venues, meta.Venues),
		Lodging:   lodgingEntries(cond.Lodging),
		Meals:     mealEntries(cond.Meals),
		Access:    concatEntries(cond.Access, meta.Access),
		Logistics: concatEntries(cond.Logistics, meta.Logistics),
		Contacts:  concatEntries(cond.Contacts, meta.Contacts),
	}
}

func feeEntries(program models.Program, meta ItemMetadata, cond Conditions, booking *models.Booking) []Entry {
	out := []Entry{}
	rem := cond.Remuneration
	if rem == nil {
		return out
	}

	isNet := true
	if rem.IsNet != nil {
		isNet = *rem.IsNet
	}

	switch program.Kind {
	case models.ProgramMultiDates:
		// The artist's chosen option wins over the flat per-date amount
		if booking != nil && booking.OptionLabel != "" && booking.OptionAmountCents != nil {
			out = append(out, Entry{Label: booking.OptionLabel, Value: utils.FormatCents(*booking.OptionAmountCents, isNet)})
			return out
		}
		if rem.PerDate != nil {
			out = append(out, Entry{Label: "Cachet par date", Value: formatAmount(rem.PerDate.AmountCents, isNet)})
		}

	case models.ProgramWeeklyResidency:
		if rem.PerWeek == nil {
			return out
		}
		switch meta.WeekType {
		case models.WeekTypeCalm:
			out = appendWeekFee(out, "Semaine calme", rem.PerWeek.Calm, isNet)
		case models.WeekTypePeak:
			out = appendWeekFee(out, "Semaine forte", rem.PerWeek.Peak, isNet)
		default:
			// No week type set on the item: show both profiles
			out = appendWeekFee(out, "Semaine calme", rem.PerWeek.Calm, isNet)
			out = appendWeekFee(out, "Semaine forte", rem.PerWeek.Peak, isNet)
		}
	}

	return out
}

func appendWeekFee(entries []Entry, label string, fee *PerWeekFee, isNet bool) []Entry {
	if fee == nil {
		return entries
	}
	value := formatAmount(fee.AmountCents, isNet)
	if fee.Performances != nil {
		value = fmt.Sprintf("%d représentations, %s", *fee.Performances, value)
	}
	return append(entries, Entry{Label: label, Value: value})
}

func formatAmount(cents *int, isNet bool) string {
	if cents == nil {
		return amountPlaceholder
	}
	return utils.FormatCents(*cents, isNet)
}

func scheduleEntries(program models.Program, item models.ProgramItem, meta ItemMetadata) []Entry {
	// Explicit schedule metadata is used verbatim
	if len(meta.Schedule) > 0 {
		return append([]Entry{}, meta.Schedule...)
	}

	if program.Kind == models.ProgramWeeklyResidency && item.EndDate != nil {
		return []Entry{{
			Label: "Semaine",
			Value: fmt.Sprintf("%s → %s, semaine complète",
				item.StartDate.Format("02/01/2006"), item.EndDate.Format("02/01/2006")),
		}}
	}
	return []Entry{{Label: "Date", Value: item.StartDate.Format("02/01/2006")}}
}

func lodgingEntries(l *Lodging) []Entry {
	if l == nil {
		return []Entry{}
	}
	out := concatEntries(l.Entries)
	if l.Included != nil {
		value := "Non inclus"
		if *l.Included {
			value = "Inclus"
		}
		out = append([]Entry{{Label: "Hébergement", Value: value}}, out...)
	}
	if l.Details != "" {
		out = append(out, Entry{Label: "Détails", Value: l.Details})
	}
	if l.CompanionIncluded != nil && *l.CompanionIncluded {
		out = append(out, Entry{Label: "Accompagnant", Value: "Inclus"})
	}
	return out
}

func mealEntries(m *Meals) []Entry {
	if m == nil {
		return []Entry{}
	}
	out := concatEntries(m.Entries)
	if m.Included != nil {
		value := "Non inclus"
		if *m.Included {
			value = "Inclus"
		}
		out = append([]Entry{{Label: "Repas", Value: value}}, out...)
	}
	if m.Details != "" {
		out = append(out, Entry{Label: "Détails", Value: m.Details})
	}
	return out
}

// concatEntries joins the given lists, trims every entry and drops the
// ones that are empty on both sides.
func concatEntries(lists ...[]Entry) []Entry {
	out := []Entry{}
	for _, list := range lists {
		for _, e := range list {
			label := strings.TrimSpace(e.Label)
			value := strings.TrimSpace(e.Value)
			if label == "" && value == "" {
				continue
			}
			out = append(out, Entry{Label: label, Value: value})
		}
	}
	return out
}
