package models

import (
	"time"

	"gorm.io/datatypes"
)

// Program kinds
const (
	ProgramMultiDates      = "MULTI_DATES"      // discrete single days
	ProgramWeeklyResidency = "WEEKLY_RESIDENCY" // Sunday-to-Sunday weeks
)

// Program statuses
const (
	ProgramStatusActive    = "active"
	ProgramStatusArchived  = "archived"
	ProgramStatusCancelled = "cancelled"
)

type Program struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	ClientID uint `json:"clientID" gorm:"not null;index"`
	Client   User `json:"client" gorm:"foreignKey:ClientID"`

	Name string `json:"name" gorm:"not null"`
	Kind string `json:"kind" gorm:"size:20;not null;index"` // MULTI_DATES | WEEKLY_RESIDENCY

	Status   string `json:"status" gorm:"size:16;default:'active';index"`
	IsPublic bool   `json:"isPublic" gorm:"default:false;index"`
	IsOpen   bool   `json:"isOpen" gorm:"default:false;index"`

	Description string `json:"description" gorm:"type:text"`
	City        string `json:"city"`

	// Conditions is the legacy-derived baseline; ConditionsOverride holds
	// admin edits. The merged view is computed on demand, never stored.
	Conditions         datatypes.JSON `json:"conditions" gorm:"type:jsonb"`
	ConditionsOverride datatypes.JSON `json:"conditionsOverride" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []ProgramItem `json:"items" gorm:"foreignKey:ProgramID"`
}
