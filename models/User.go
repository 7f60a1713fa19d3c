package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is the closed set of actor roles the permission layer dispatches on.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleArtist Role = "artist"
	RoleClient Role = "client"
)

// ParseRole maps an arbitrary string onto the closed role set.
// Unknown values come back as ("", false) so callers fail closed.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleArtist, RoleClient:
		return Role(s), true
	}
	return "", false
}

type User struct {
	gorm.Model
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber" gorm:"uniqueIndex"`
	Password       string `json:"password"`
	SocialLogin    bool   `json:"socialLogin"`
	SocialProvider string `json:"socialProvider"`
	AvatarURL      string `json:"avatarURL"`
	Bio            string `json:"bio"`

	// Artist profile
	StageName   string         `json:"stageName"`
	Disciplines datatypes.JSON `json:"disciplines"` // ["lindy hop", "solo jazz", ...]
	PressPhotos datatypes.JSON `json:"pressPhotos"`

	SavedPrograms       datatypes.JSON `json:"savedPrograms"`
	PushTokens          datatypes.JSON `json:"pushTokens"`
	AllowsNotifications *bool          `json:"allowsNotifications"`

	Role Role `json:"role" gorm:"type:varchar(20);default:artist;index"`

	Programs []Program `json:"programs" gorm:"foreignKey:ClientID;references:ID"`
}

// Custom JSON marshaling so JSON columns render as arrays, never null
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Disciplines   []string `json:"disciplines,omitempty"`
		PressPhotos   []string `json:"pressPhotos,omitempty"`
		SavedPrograms []int    `json:"savedPrograms,omitempty"`
		PushTokens    []string `json:"pushTokens,omitempty"`
		*Alias
	}{
		Disciplines:   []string{},
		PressPhotos:   []string{},
		SavedPrograms: []int{},
		PushTokens:    []string{},
		Alias:         (*Alias)(u),
	}

	if u.Disciplines != nil {
		var disciplines []string
		if err := json.Unmarshal(u.Disciplines, &disciplines); err == nil {
			aux.Disciplines = disciplines
		}
	}

	if u.PressPhotos != nil {
		var photos []string
		if err := json.Unmarshal(u.PressPhotos, &photos); err == nil {
			aux.PressPhotos = photos
		}
	}

	if u.SavedPrograms != nil {
		var saved []int
		if err := json.Unmarshal(u.SavedPrograms, &saved); err == nil {
			aux.SavedPrograms = saved
		}
	}

	if u.PushTokens != nil {
		var tokens []string
		if err := json.Unmarshal(u.PushTokens, &tokens); err == nil {
			aux.PushTokens = tokens
		}
	}

	return json.Marshal(aux)
}
