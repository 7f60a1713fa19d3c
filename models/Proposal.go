package models

import "time"

// Proposal statuses
const (
	ProposalStatusSent      = "sent"
	ProposalStatusCountered = "countered"
	ProposalStatusAccepted  = "accepted"
	ProposalStatusDeclined  = "declined"
)

// Proposal is one step of a fee negotiation on a request. Counters
// chain through ParentID; accepting any proposal closes the thread.
type Proposal struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	RequestID uint           `json:"requestID" gorm:"not null;index"`
	Request   BookingRequest `json:"request" gorm:"foreignKey:RequestID"`
	ArtistID  uint           `json:"artistID" gorm:"not null;index"`
	Artist    User           `json:"artist" gorm:"foreignKey:ArtistID"`

	ParentID *uint     `json:"parentID" gorm:"index"`
	Parent   *Proposal `json:"parent" gorm:"foreignKey:ParentID"`

	FeeCents int    `json:"feeCents" gorm:"not null"`
	IsNet    bool   `json:"isNet" gorm:"default:true"`
	Terms    string `json:"terms" gorm:"type:text"`

	Status string `json:"status" gorm:"size:16;default:'sent';index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
