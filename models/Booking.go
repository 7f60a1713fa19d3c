package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking confirms one artist against one item. ConditionsSnapshot
// freezes the merged program conditions at confirmation time so later
// edits never rewrite what was agreed.
type Booking struct {
	ID       uint        `json:"id" gorm:"primaryKey"`
	ItemID   uint        `json:"itemID" gorm:"not null;index"`
	Item     ProgramItem `json:"item" gorm:"foreignKey:ItemID"`
	ArtistID uint        `json:"artistID" gorm:"not null;index"`
	Artist   User        `json:"artist" gorm:"foreignKey:ArtistID"`

	Status string `json:"status" gorm:"size:16;default:'confirmed';index"`

	ConditionsSnapshot datatypes.JSON `json:"conditionsSnapshot" gorm:"type:jsonb"`

	// Chosen fee option, when the program offers a per-date choice
	OptionLabel       string `json:"optionLabel"`
	OptionAmountCents *int   `json:"optionAmountCents"`

	IsRead bool `json:"isRead" gorm:"default:false"` // admin dashboard

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"deletedAt" gorm:"index"`
}
