package models

import "time"

// Application statuses
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusDeclined  = "declined"
	ApplicationStatusWithdrawn = "withdrawn"
)

// Application is an artist's expressed interest in an item, prior to
// any booking confirmation.
type Application struct {
	ID       uint        `json:"id" gorm:"primaryKey"`
	ItemID   uint        `json:"itemID" gorm:"not null;index:idx_app_item_artist,unique"`
	Item     ProgramItem `json:"item" gorm:"foreignKey:ItemID"`
	ArtistID uint        `json:"artistID" gorm:"not null;index:idx_app_item_artist,unique"`
	Artist   User        `json:"artist" gorm:"foreignKey:ArtistID"`

	Status  string `json:"status" gorm:"size:16;default:'pending';index"`
	Message string `json:"message" gorm:"type:text"`

	// Chosen fee option, when the program offers a per-date choice
	OptionLabel       string `json:"optionLabel"`
	OptionAmountCents *int   `json:"optionAmountCents"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
