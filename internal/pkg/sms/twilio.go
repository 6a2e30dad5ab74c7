package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com"

// TwilioOptions configures the Twilio REST client.
type TwilioOptions struct {
	// AccountSID is the Twilio account identifier.
	AccountSID string
	// AuthToken is the Twilio API secret.
	AuthToken string
	// From is the sending phone number.
	From string
	// BaseURL overrides the API endpoint, used in tests.
	BaseURL string
	// Timeout bounds each send request.
	Timeout time.Duration
}

// Twilio implements Sender against the Twilio Messages API.
type Twilio struct {
	opts   TwilioOptions
	client *http.Client
}

// NewTwilio constructs a Twilio sender.
func NewTwilio(opts TwilioOptions) *Twilio {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	return &Twilio{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
	}
}

// Send posts a message and returns the provider message SID.
func (t *Twilio) Send(ctx context.Context, to, body string) (string, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.opts.From)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", strings.TrimRight(t.opts.BaseURL, "/"), t.opts.AccountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(t.opts.AccountSID, t.opts.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload, &apiErr); err == nil && apiErr.Message != "" {
			return "", fmt.Errorf("sms: twilio send failed (%d): %s", apiErr.Code, apiErr.Message)
		}
		return "", fmt.Errorf("sms: twilio send failed with status %d", resp.StatusCode)
	}

	var result struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", err
	}

	return result.SID, nil
}
