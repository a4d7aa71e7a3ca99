package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"regexp"
	"time"
)

// Recommended per-call bounds. Push prompts can be slow to acknowledge, so
// the STK call gets a longer window than the token fetch.
const (
	TokenTimeout   = 10 * time.Second
	STKPushTimeout = 15 * time.Second
)

var phonePattern = regexp.MustCompile(`^254\d{9}$`)

// PaymentRequest is the caller's input to an STK push. It is validated before
// any network call is made.
type PaymentRequest struct {
	PayerName   string  `json:"payerName"`
	PhoneNumber string  `json:"phoneNumber"`
	Amount      float64 `json:"amount"`
}

// Validate rejects malformed input up front so no gateway round-trip is
// wasted on a request that cannot succeed.
func (r *PaymentRequest) Validate() error {
	if r.PayerName == "" {
		return &ValidationError{Field: "payerName", Message: "payerName is required"}
	}
	if !phonePattern.MatchString(r.PhoneNumber) {
		return &ValidationError{Field: "phoneNumber", Message: "Invalid phone number format. Use format: 254XXXXXXXXX"}
	}
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) || r.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "Invalid amount. Amount must be a positive number"}
	}
	return nil
}

// STKPushResult carries the correlation handles the gateway issues at
// initiation time. They are echoed back in the asynchronous callback.
type STKPushResult struct {
	CheckoutRequestID string
	MerchantRequestID string
	CustomerMessage   string
}

type stkPushEnvelope struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	MerchantRequestID   string `json:"MerchantRequestID"`
	CustomerMessage     string `json:"CustomerMessage"`
	ErrorMessage        string `json:"errorMessage"`
}

// Client talks to the Daraja gateway. It is stateless per call; tokens are
// fetched fresh per initiation and never cached.
type Client struct {
	cfg        *Config
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(cfg *Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		now:        time.Now,
	}
}

// Config exposes the gateway configuration the client was built with.
func (c *Client) Config() *Config {
	return c.cfg
}

// GetAccessToken exchanges the consumer key/secret for a short-lived bearer
// token. No retries; a failed exchange is the caller's problem to report.
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.AuthURL(), nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil || tokenResp.AccessToken == "" {
		return "", &AuthError{StatusCode: resp.StatusCode, Reason: "no access_token field in gateway response"}
	}

	return tokenResp.AccessToken, nil
}

// GeneratePassword derives the timestamped request password. The gateway
// recomputes the same hash server-side, so the returned timestamp must be
// sent verbatim in the envelope alongside the password.
func GeneratePassword(shortCode, passkey string, t time.Time) (password, timestamp string) {
	timestamp = t.Format("20060102150405")
	password = base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
	return password, timestamp
}

// InitiateSTKPush submits a push-payment request. Exactly one prompt reaches
// the payer's device per successful call; callers must guard against
// double-submission themselves.
func (c *Client) InitiateSTKPush(ctx context.Context, accessToken string, payment PaymentRequest) (*STKPushResult, error) {
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	password, timestamp := GeneratePassword(c.cfg.ShortCode, c.cfg.Passkey, c.now())

	envelope := stkPushEnvelope{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   TransactionType,
		// The gateway does not accept cents.
		Amount:           int64(payment.Amount),
		PartyA:           payment.PhoneNumber,
		PartyB:           c.cfg.ShortCode,
		PhoneNumber:      payment.PhoneNumber,
		CallBackURL:      c.cfg.CallbackURL,
		AccountReference: payment.PayerName,
		TransactionDesc:  "Fee Payment",
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.STKPushURL(), bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &PaymentError{Stage: StageGateway, Description: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var pushResp stkPushResponse
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = json.Unmarshal(body, &pushResp)
		detail := pushResp.ErrorMessage
		if detail == "" {
			detail = string(body)
		}
		return nil, &PaymentError{
			Stage:       StageGateway,
			Description: fmt.Sprintf("STK push failed (%d): %s", resp.StatusCode, detail),
		}
	}

	if err := json.Unmarshal(body, &pushResp); err != nil {
		return nil, &PaymentError{
			Stage:       StageGateway,
			Description: fmt.Sprintf("invalid gateway response: %s", string(body)),
		}
	}

	if pushResp.ResponseCode != "0" {
		description := pushResp.ResponseDescription
		if description == "" {
			description = "Payment request failed"
		}
		return nil, &PaymentError{Stage: StageBusiness, Description: description}
	}

	return &STKPushResult{
		CheckoutRequestID: pushResp.CheckoutRequestID,
		MerchantRequestID: pushResp.MerchantRequestID,
		CustomerMessage:   pushResp.CustomerMessage,
	}, nil
}
