package services

import "encoding/json"

// Entry is one label/value line inside a conditions section or a
// roadmap list.
type Entry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FeeOption is one selectable per-date fee (the artist picks one).
type FeeOption struct {
	Label       string `json:"label"`
	AmountCents int    `json:"amount_cents"`
}

// PerDateFee is the remuneration of a single MULTI_DATES date.
type PerDateFee struct {
	AmountCents *int        `json:"amount_cents,omitempty"`
	Options     []FeeOption `json:"options,omitempty"`
}

// PerWeekFee is the remuneration of one residency week type.
type PerWeekFee struct {
	Performances *int `json:"performances,omitempty"`
	AmountCents  *int `json:"amount_cents,omitempty"`
}

// PerWeekFees holds the two residency week profiles.
type PerWeekFees struct {
	Calm *PerWeekFee `json:"calm,omitempty"`
	Peak *PerWeekFee `json:"peak,omitempty"`
}

// Remuneration groups the fee structure. IsNet defaults to net when
// unset.
type Remuneration struct {
	PerDate *PerDateFee  `json:"per_date,omitempty"`
	PerWeek *PerWeekFees `json:"per_week,omitempty"`
	IsNet   *bool        `json:"is_net,omitempty"`
}

// Lodging and Meals carry an inclusion flag, free-text details and a
// free-form entry list.
type Lodging struct {
	Included          *bool   `json:"included,omitempty"`
	CompanionIncluded *bool   `json:"companion_included,omitempty"`
	Details           string  `json:"details,omitempty"`
	Entries           []Entry `json:"entries,omitempty"`
}

type Meals struct {
	Included *bool   `json:"included,omitempty"`
	Details  string  `json:"details,omitempty"`
	Entries  []Entry `json:"entries,omitempty"`
}

// Conditions is the canonical configuration driving both the admin
// conditions form and the roadmap generator.
type Conditions struct {
	Remuneration *Remuneration `json:"remuneration,omitempty"`
	Defraiement  []Entry       `json:"defraiement,omitempty"`
	Lodging      *Lodging      `json:"lodging,omitempty"`
	Meals        *Meals        `json:"meals,omitempty"`
	Venues       []Entry       `json:"venues,omitempty"`
	Contacts     []Entry       `json:"contacts,omitempty"`
	Access       []Entry       `json:"access,omitempty"`
	Logistics    []Entry       `json:"logistics,omitempty"`
	Planning     []Entry       `json:"planning,omitempty"`
	Notes        *string       `json:"notes,omitempty"`
}

// ParseConditions decodes a stored conditions payload. Malformed or
// empty payloads come back as the zero value so merge always receives
// well-typed input.
func ParseConditions(raw []byte) Conditions {
	var c Conditions
	if len(raw) == 0 {
		return c
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return Conditions{}
	}
	return c
}

// MergeConditions combines the legacy-derived baseline with the
// admin-edited override. The merge is shallow at the top level: each
// section falls back to the baseline when absent from the override and
// replaces it wholesale when present. Remuneration alone merges one
// level deeper, field by field within per_date and per_week. Merging
// the same override twice yields the same result.
func MergeConditions(baseline, override Conditions) Conditions {
	out := baseline

	if override.Remuneration != nil {
		out.Remuneration = mergeRemuneration(baseline.Remuneration, override.Remuneration)
	}
	if override.Defraiement != nil {
		out.Defraiement = override.Defraiement
	}
	if override.Lodging != nil {
		out.Lodging = override.Lodging
	}
	if override.Meals != nil {
		out.Meals = override.Meals
	}
	if override.Venues != nil {
		out.Venues = override.Venues
	}
	if override.Contacts != nil {
		out.Contacts = override.Contacts
	}
	if override.Access != nil {
		out.Access = override.Access
	}
	if override.Logistics != nil {
		out.Logistics = override.Logistics
	}
	if override.Planning != nil {
		out.Planning = override.Planning
	}
	// Pointer semantics like the other sections: nil keeps the
	// baseline, a present empty string clears it.
	if override.Notes != nil {
		out.Notes = override.Notes
	}

	return out
}

func mergeRemuneration(base, over *Remuneration) *Remuneration {
	if base == nil {
		cp := *over
		return &cp
	}
	out := *base
	if over.IsNet != nil {
		out.IsNet = over.IsNet
	}
	if over.PerDate != nil {
		out.PerDate = mergePerDate(base.PerDate, over.PerDate)
	}
	if over.PerWeek != nil {
		out.PerWeek = mergePerWeek(base.PerWeek, over.PerWeek)
	}
	return &out
}

func mergePerDate(base, over *PerDateFee) *PerDateFee {
	if base == nil {
		cp := *over
		return &cp
	}
	out := *base
	if over.AmountCents != nil {
		out.AmountCents = over.AmountCents
	}
	// An override options list replaces the baseline's list outright,
	// it is never appended.
	if over.Options != nil {
		out.Options = over.Options
	}
	return &out
}

func mergePerWeek(base, over *PerWeekFees) *PerWeekFees {
	if base == nil {
		cp := *over
		return &cp
	}
	out := *base
	if over.Calm != nil {
		out.Calm = over.Calm
	}
	if over.Peak != nil {
		out.Peak = over.Peak
	}
	return &out
}
