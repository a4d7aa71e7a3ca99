package models

import "gorm.io/gorm"

// FeePayment is one confirmed payment against a student's fee balance,
// regardless of which channel (M-PESA, card) it came through.
type FeePayment struct {
	gorm.Model
	StudentName string  `gorm:"not null" json:"student_name"`
	AdmissionNo string  `json:"admission_no"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Method      string  `gorm:"not null" json:"method"` // e.g. "M-PESA", "Card"
	Reference   string  `json:"reference"`
	PaymentDate string  `json:"payment_date"`
}
