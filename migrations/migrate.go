package migrations

import (
	"school-fees-portal-server/models"
	"school-fees-portal-server/utils"
)

func MigratePortal() {
	utils.PortalDB.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.FeePayment{},
		&models.MpesaPayment{},
		&models.Receipt{},
		&models.Notification{},
		&models.SchoolSetting{},
	)
}
