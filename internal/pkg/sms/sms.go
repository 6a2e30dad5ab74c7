// Package sms dispatches text messages through an external delivery provider.
package sms

import "context"

// Sender delivers a text message to a phone number and returns the
// provider-assigned message ID.
type Sender interface {
	Send(ctx context.Context, to, body string) (string, error)
}
