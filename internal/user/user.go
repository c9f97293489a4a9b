// Package user provides account operations.
package user

import (
	"errors"
	"fmt"

	"github.com/mkessy/devbench/internal/models"
	"github.com/mkessy/devbench/internal/validate"
	"gorm.io/gorm"
)

// Create inserts a new user. The password is stored as supplied; hashing
// is the caller's concern.
func Create(db *gorm.DB, in validate.NewUser) (*models.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("user: %w", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("user: check username %q: %w", in.Username, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("user: username taken: %s", in.Username)
	}

	id, err := models.NewID("usr")
	if err != nil {
		return nil, err
	}

	u := models.User{
		ID:       id,
		Username: in.Username,
		Password: in.Password,
	}

	if err := db.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("user: create: %w", err)
	}
	return &u, nil
}

// Get retrieves a user by ID.
func Get(db *gorm.DB, id string) (*models.User, error) {
	var u models.User
	if err := db.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: not found: %s", id)
		}
		return nil, fmt.Errorf("user: get %s: %w", id, err)
	}
	return &u, nil
}

// GetByUsername retrieves a user by username, preloading owned projects.
func GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	var u models.User
	if err := db.Preload("Projects").Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: not found: %s", username)
		}
		return nil, fmt.Errorf("user: get %s: %w", username, err)
	}
	return &u, nil
}

// List returns all users ordered by creation time.
func List(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("user: list: %w", err)
	}
	return users, nil
}
