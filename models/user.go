package models

import "gorm.io/gorm"

// User is a staff member of the school, not a payer.
type User struct {
	gorm.Model
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"unique;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Role      string `gorm:"not null" json:"role"` // e.g. "admin", "bursar"
	PushToken string `gorm:"column:push_token" json:"push_token"`
}
