package models

import (
	"time"

	"gorm.io/datatypes"
)

// Item kinds
const (
	ItemDate = "DATE" // single day, implicit one-day span
	ItemWeek = "WEEK" // explicit Sunday-to-Sunday span
)

// Item statuses
const (
	ItemStatusOpen      = "OPEN"
	ItemStatusClosed    = "CLOSED"
	ItemStatusCancelled = "CANCELLED"
)

// Week types stored in item metadata
const (
	WeekTypeCalm = "CALM"
	WeekTypePeak = "PEAK"
)

// ProgramItem is one schedulable unit inside a program: a single DATE
// or a WEEK. EndDate is set for WEEK items only; DATE items span their
// start day and nothing else.
type ProgramItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	ProgramID uint    `json:"programID" gorm:"not null;index"`
	Program   Program `json:"program" gorm:"foreignKey:ProgramID"`

	Kind      string     `json:"kind" gorm:"size:8;not null"` // DATE | WEEK
	StartDate time.Time  `json:"startDate" gorm:"type:date;not null;index"`
	EndDate   *time.Time `json:"endDate" gorm:"type:date"`

	Status string `json:"status" gorm:"size:12;default:'OPEN';index"`

	// Metadata carries the week type (CALM/PEAK) and per-item overrides
	// of schedule/venues/contacts/access/logistics entries.
	Metadata datatypes.JSON `json:"metadata" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Applications []Application `json:"applications" gorm:"foreignKey:ItemID"`
	Bookings     []Booking     `json:"bookings" gorm:"foreignKey:ItemID"`
}
