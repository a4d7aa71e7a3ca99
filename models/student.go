package models

import "gorm.io/gorm"

type Student struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	AdmissionNo string  `gorm:"unique;not null" json:"admission_no"`
	Class       string  `json:"class"`
	PhoneNumber string  `json:"phone_number"`
	Balance     float64 `gorm:"default:0" json:"balance"`
}
