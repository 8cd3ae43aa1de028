package repositories

import (
	"github.com/anonto42/nexa/backend/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates every table, index and foreign key. Users go
// first since everything else references them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	)
}
