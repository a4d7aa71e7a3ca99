package models

import "gorm.io/gorm"

// MpesaPayment correlates an STK push initiation with the callback that
// arrives later. The unique CheckoutRequestID is the correlation key; rows
// start Pending and are resolved by the callback receiver.
type MpesaPayment struct {
	gorm.Model
	CheckoutRequestID string  `gorm:"unique;not null"`
	MerchantRequestID string  `gorm:"not null"`
	PayerName         string  `gorm:"not null"`
	PhoneNumber       string  `gorm:"not null"`
	Amount            float64 `gorm:"not null"`
	Status            string  `gorm:"not null"` // "Pending", "Success", "Failed"
	ReceiptNumber     string
	TransactionDate   string
	ResultDescription string
}
