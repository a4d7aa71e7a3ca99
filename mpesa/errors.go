package mpesa

import (
	"fmt"
	"strings"
)

// ConfigError reports which M-Pesa environment variables are missing.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "M-Pesa credentials not configured. Missing: " + strings.Join(e.Missing, ", ")
}

// ValidationError rejects caller input before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError reports a failed token exchange, preserving the gateway's raw
// diagnostic so it can be surfaced upstream.
type AuthError struct {
	StatusCode int
	Body       string
	Reason     string
}

func (e *AuthError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("failed to get access token (%d): %s", e.StatusCode, e.Body)
}

// Error stages for PaymentError.
const (
	StageGateway  = "gateway"
	StageBusiness = "business"
)

// PaymentError reports a rejected push request. StageBusiness carries the
// gateway's own description verbatim (e.g. insufficient funds) so the UI can
// show an actionable message; StageGateway covers transport and non-2xx
// failures.
type PaymentError struct {
	Stage       string
	Description string
}

func (e *PaymentError) Error() string {
	return e.Description
}
