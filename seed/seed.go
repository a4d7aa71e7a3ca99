// seed/seed.go
package seed

import (
	"errors"
	"log"
	"os"

	"school-fees-portal-server/models"
	"school-fees-portal-server/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminUser creates the initial staff login from ADMIN_EMAIL and
// ADMIN_PASSWORD if no user exists yet.
func SeedAdminUser() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set. Skipping admin seeding.")
		return nil
	}

	var existing models.User
	err := utils.PortalDB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists. Skipping seeding.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
	}

	if err := utils.PortalDB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully.")
	return nil
}

// SeedSchoolSettings creates the settings singleton if missing.
func SeedSchoolSettings() error {
	var existing models.SchoolSetting
	err := utils.PortalDB.First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	settings := models.SchoolSetting{
		SchoolName: os.Getenv("SCHOOL_NAME"),
		Email:      os.Getenv("SCHOOL_EMAIL"),
		Phone:      os.Getenv("SCHOOL_PHONE"),
		Currency:   "KES",
	}

	if err := utils.PortalDB.Create(&settings).Error; err != nil {
		return err
	}

	log.Println("School settings seeded successfully.")
	return nil
}
