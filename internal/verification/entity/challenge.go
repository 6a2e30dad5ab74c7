package entity

import "time"

// Challenge is a single-use phone verification code. At most one live
// challenge exists per phone number: issuing replaces, verifying consumes.
type Challenge struct {
	ID          int64
	PhoneNumber string
	Code        string
	ExpiresAt   time.Time
}

// NewProfile carries the data for provisioning a profile after a successful
// phone verification with complete signup details.
type NewProfile struct {
	UserID      string
	FullName    string
	Role        string
	Age         *int32
	Gender      string
	PhoneNumber string
}
