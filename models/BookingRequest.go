package models

import "time"

// Request statuses
const (
	RequestStatusOpen    = "open"
	RequestStatusMatched = "matched"
	RequestStatusClosed  = "closed"
)

// BookingRequest is a client's ask for an artist: an event date, a
// style, a budget. Admins match it by inviting artists and steering
// the proposal thread.
type BookingRequest struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	ClientID uint `json:"clientID" gorm:"not null;index"`
	Client   User `json:"client" gorm:"foreignKey:ClientID"`

	EventDate   time.Time `json:"eventDate" gorm:"type:date;not null"`
	Style       string    `json:"style"`
	BudgetCents int       `json:"budgetCents"`
	Message     string    `json:"message" gorm:"type:text"`

	Status string `json:"status" gorm:"size:16;default:'open';index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Invitations []Invitation `json:"invitations" gorm:"foreignKey:RequestID"`
	Proposals   []Proposal   `json:"proposals" gorm:"foreignKey:RequestID"`
}
