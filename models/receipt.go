package models

import "gorm.io/gorm"

type Receipt struct {
	gorm.Model
	ReceiptNo   string  `gorm:"unique;not null" json:"receipt_no"`
	StudentName string  `json:"student_name"`
	AdmissionNo string  `json:"admission_no"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	PayMode     string  `json:"pay_mode"`
	PhoneNumber string  `json:"phone_number"`
	Status      string  `json:"status"`
}
