package models

import (
	"time"
)

// Preferences holds a user's notification settings, embedded in User
type Preferences struct {
	Notifications bool `gorm:"not null;default:true" json:"notifications"`
	EmailUpdates  bool `gorm:"not null;default:true" json:"emailUpdates"`
}

// DefaultPreferences returns the preferences assigned on first sign-in
func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: true,
		EmailUpdates:  true,
	}
}

// User represents the user domain entity. Email is the external identity
// (unique, supplied by the token); ID is the internal authorization principal.
type User struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	Email       string      `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string      `gorm:"not null;default:'Anonymous'" json:"displayName"`
	PhotoURL    *string     `json:"photoURL"`
	PhoneNumber *string     `json:"phoneNumber,omitempty"`
	Bio         *string     `json:"bio,omitempty"`
	Preferences Preferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}
