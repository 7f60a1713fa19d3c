package models

import "time"

// Invitation statuses
const (
	InvitationStatusSent     = "sent"
	InvitationStatusAccepted = "accepted"
	InvitationStatusDeclined = "declined"
	InvitationStatusExpired  = "expired"
)

// Invitation asks an artist to consider a request or a specific item.
// Exactly one of RequestID/ItemID is set.
type Invitation struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	RequestID *uint           `json:"requestID" gorm:"index"`
	Request   *BookingRequest `json:"request" gorm:"foreignKey:RequestID"`
	ItemID    *uint           `json:"itemID" gorm:"index"`
	Item      *ProgramItem    `json:"item" gorm:"foreignKey:ItemID"`

	InviterID uint `json:"inviterID" gorm:"not null"`
	Inviter   User `json:"inviter" gorm:"foreignKey:InviterID"`
	ArtistID  uint `json:"artistID" gorm:"not null;index"`
	Artist    User `json:"artist" gorm:"foreignKey:ArtistID"`

	Message string `json:"message" gorm:"type:text"`

	// Link-based invite token. Pointer so NULL does not violate the
	// unique index across rows.
	LinkToken *string    `json:"linkToken" gorm:"uniqueIndex;size:64"`
	ExpiresAt *time.Time `json:"expiresAt"`

	Status string `json:"status" gorm:"index;size:16"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
