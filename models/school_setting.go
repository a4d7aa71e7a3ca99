package models

import "gorm.io/gorm"

// SchoolSetting is a singleton row holding the school profile shown on the
// settings page and used on receipts.
type SchoolSetting struct {
	gorm.Model
	SchoolName string `json:"school_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Currency   string `gorm:"default:KES" json:"currency"`
}
