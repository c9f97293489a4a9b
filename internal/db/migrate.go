package db

import (
	"fmt"

	"github.com/mkessy/devbench/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Project{},
		&models.Model{},
		&models.Execution{},
		&models.File{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedAdmin inserts the initial admin account if no user with that
// username exists. The password is stored as supplied; hashing belongs to
// the application's auth layer.
func SeedAdmin(db *gorm.DB, username, password string) (*models.User, error) {
	id, err := models.NewID("usr")
	if err != nil {
		return nil, err
	}

	u := models.User{
		ID:       id,
		Username: username,
		Password: password,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(&u)
	if result.Error != nil {
		return nil, fmt.Errorf("db: seed admin %q: %w", username, result.Error)
	}

	// On conflict the generated ID was discarded; return the stored row.
	var stored models.User
	if err := db.Where("username = ?", username).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("db: read admin %q: %w", username, err)
	}
	return &stored, nil
}
