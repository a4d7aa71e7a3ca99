package mpesa

import (
	"fmt"
	"os"
	"strings"
)

// Environment selects which Daraja deployment the portal talks to.
type Environment string

const (
	Sandbox    Environment = "sandbox"
	Production Environment = "production"
)

const (
	// TransactionType is fixed for paybill STK pushes.
	TransactionType = "CustomerPayBillOnline"

	// DefaultShortCode is Safaricom's shared sandbox paybill.
	DefaultShortCode = "174379"

	authPath    = "/oauth/v1/generate?grant_type=client_credentials"
	stkPushPath = "/mpesa/stkpush/v1/processrequest"
)

var baseURLs = map[Environment]string{
	Sandbox:    "https://sandbox.safaricom.co.ke",
	Production: "https://api.safaricom.co.ke",
}

// Config holds the Daraja credentials and endpoints for one gateway
// environment. It is built once at startup and passed into the components
// that need it; payment code never reads the process environment itself.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	Environment    Environment
	CallbackURL    string

	// BaseURL overrides the environment's default gateway host. Used by the
	// MPESA_BASE_URL variable and by tests pointing at a local fake.
	BaseURL string
}

// AuthURL returns the OAuth token endpoint for the configured environment.
func (c *Config) AuthURL() string {
	return c.BaseURL + authPath
}

// STKPushURL returns the push-payment endpoint for the configured environment.
func (c *Config) STKPushURL() string {
	return c.BaseURL + stkPushPath
}

// LoadConfig reads the M-Pesa settings from the process environment. Missing
// secrets make it fail with a ConfigError listing every absent variable so
// the initiate path can report them all at once.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ConsumerKey:    os.Getenv("MPESA_CONSUMER_KEY"),
		ConsumerSecret: os.Getenv("MPESA_CONSUMER_SECRET"),
		ShortCode:      os.Getenv("MPESA_BUSINESS_SHORT_CODE"),
		Passkey:        os.Getenv("MPESA_PASSKEY"),
		CallbackURL:    os.Getenv("MPESA_CALLBACK_URL"),
		BaseURL:        os.Getenv("MPESA_BASE_URL"),
	}

	if cfg.ShortCode == "" {
		cfg.ShortCode = DefaultShortCode
	}

	env := Environment(strings.ToLower(os.Getenv("MPESA_ENVIRONMENT")))
	if env == "" {
		env = Sandbox
	}
	if _, ok := baseURLs[env]; !ok {
		return nil, fmt.Errorf("unknown MPESA_ENVIRONMENT %q (want sandbox or production)", env)
	}
	cfg.Environment = env

	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURLs[env]
	}

	var missing []string
	if cfg.ConsumerKey == "" {
		missing = append(missing, "MPESA_CONSUMER_KEY")
	}
	if cfg.ConsumerSecret == "" {
		missing = append(missing, "MPESA_CONSUMER_SECRET")
	}
	if cfg.Passkey == "" {
		missing = append(missing, "MPESA_PASSKEY")
	}
	if cfg.CallbackURL == "" {
		missing = append(missing, "MPESA_CALLBACK_URL")
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Missing: missing}
	}

	return cfg, nil
}
