package models

import "time"

// User is an account that owns projects.
type User struct {
	ID        string `gorm:"primaryKey;size:32"`
	Username  string `gorm:"size:64;uniqueIndex;not null"`
	Password  string `gorm:"type:text;not null"`
	CreatedAt time.Time

	Projects []Project `gorm:"foreignKey:UserID"`
}
