package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/ufotoken/backend/internal/models"
	"gorm.io/gorm"
)

func initSchemaMigration() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_init_schema",
		Migrate: func(tx *gorm.DB) error {
			return tx.AutoMigrate(
				&models.User{},
				&models.Mission{},
				&models.UserMission{},
				&models.Airdrop{},
				&models.GlobalStat{},
			)
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(
				&models.Airdrop{},
				&models.UserMission{},
				&models.Mission{},
				&models.GlobalStat{},
				&models.User{},
			)
		},
	}
}

func init() {
	migrationsList = append(migrationsList, initSchemaMigration())
}
