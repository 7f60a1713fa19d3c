package models

import "time"

// Notification is the in-app inbox row backing the push fan-out in
// services. Data carries the deep-link payload as raw JSON text.
type Notification struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userID" gorm:"not null;index"`
	User   User `json:"user" gorm:"foreignKey:UserID"`

	Type  string `json:"type" gorm:"size:32;index"` // invitation, booking_confirmed, proposal, ...
	Title string `json:"title" gorm:"size:200"`
	Body  string `json:"body" gorm:"type:text"`
	Data  string `json:"data" gorm:"type:text"`

	IsRead bool `json:"isRead" gorm:"default:false;index"`

	CreatedAt time.Time `json:"createdAt"`
}
