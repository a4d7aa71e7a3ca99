package mpesa

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CallbackEnvelope is the nested body the gateway POSTs to the callback URL.
type CallbackEnvelope struct {
	Body struct {
		STKCallback STKCallback `json:"stkCallback"`
	} `json:"Body"`
}

// STKCallback reports the final outcome of a previously initiated push.
// ResultCode 0 means the payer authorized the charge.
type STKCallback struct {
	MerchantRequestID string           `json:"MerchantRequestID"`
	CheckoutRequestID string           `json:"CheckoutRequestID"`
	ResultCode        int              `json:"ResultCode"`
	ResultDesc        string           `json:"ResultDesc"`
	CallbackMetadata  CallbackMetadata `json:"CallbackMetadata"`
}

type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

type MetadataItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

// PaymentDetails is the flattened form of a successful callback's metadata.
type PaymentDetails struct {
	Amount          float64
	ReceiptNumber   string
	TransactionDate string
	PhoneNumber     string
}

// Ack is the acknowledgement the gateway expects back on every delivery.
type Ack struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

// SuccessAck is returned on every callback regardless of internal outcome,
// so the gateway never has a reason to retry delivery.
func SuccessAck() Ack {
	return Ack{ResultCode: 0, ResultDesc: "Success"}
}

// ParseCallback decodes the gateway's nested envelope. A body that decodes
// but carries no checkout request ID (e.g. an empty object) is treated as
// malformed too, since nothing can be correlated against it.
func ParseCallback(raw []byte) (*STKCallback, error) {
	var envelope CallbackEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	cb := envelope.Body.STKCallback
	if cb.CheckoutRequestID == "" {
		return nil, errors.New("callback body has no stkCallback payload")
	}
	return &cb, nil
}

// Known metadata item names mapped to typed setters. Unrecognized names are
// ignored, not errors.
var metadataSetters = map[string]func(*PaymentDetails, interface{}){
	"Amount": func(d *PaymentDetails, v interface{}) {
		d.Amount = toFloat(v)
	},
	"MpesaReceiptNumber": func(d *PaymentDetails, v interface{}) {
		d.ReceiptNumber = toString(v)
	},
	"TransactionDate": func(d *PaymentDetails, v interface{}) {
		d.TransactionDate = toString(v)
	},
	"PhoneNumber": func(d *PaymentDetails, v interface{}) {
		d.PhoneNumber = toString(v)
	},
}

// PaymentDetails flattens the callback's metadata item list into a typed
// record. Only meaningful on a success callback.
func (cb *STKCallback) PaymentDetails() PaymentDetails {
	var details PaymentDetails
	for _, item := range cb.CallbackMetadata.Item {
		if set, ok := metadataSetters[item.Name]; ok {
			set(&details, item.Value)
		}
	}
	return details
}

func toFloat(v interface{}) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case int64:
		return float64(value)
	case json.Number:
		f, _ := value.Float64()
		return f
	default:
		return 0
	}
}

func toString(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		// Receipt dates and phone numbers arrive as JSON numbers.
		return fmt.Sprintf("%.0f", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
