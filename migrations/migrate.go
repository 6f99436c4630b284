package migrations

import (
	"github.com/HannahChen955/referralx-platform/models"
	"github.com/HannahChen955/referralx-platform/utils"
)

// MigrateAll creates or updates every table the platform uses.
func MigrateAll() error {
	return utils.DB.AutoMigrate(
		&models.User{},
		&models.AdminUser{},
		&models.Job{},
		&models.Referral{},
		&models.ReferralProgress{},
	)
}
