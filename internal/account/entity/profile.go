package entity

import "time"

// Profile is the application-owned record backing the dashboard and profile
// pages. Credentials live at the identity provider, never here.
type Profile struct {
	UserID      string
	FullName    string
	Age         *int32
	Gender      string
	PhoneNumber string
	AvatarURL   string
	Role        string
	UpdatedAt   time.Time
}

// NewProfile provisions a profile with its role row at signup.
type NewProfile struct {
	UserID      string
	FullName    string
	Role        string
	Age         *int32
	Gender      string
	PhoneNumber string
}

// UpdateProfile carries the editable profile fields.
type UpdateProfile struct {
	UserID      string
	FullName    string
	Age         *int32
	Gender      string
	PhoneNumber string
	AvatarURL   *string
}
