package models

import "time"

// Project is a workspace owned by a user.
type Project struct {
	ID          string `gorm:"primaryKey;size:32"`
	Name        string `gorm:"size:128;not null"`
	Description string `gorm:"type:text"`
	UserID      string `gorm:"size:32;not null;index"`
	Type        string `gorm:"size:16;not null"`
	Path        string `gorm:"size:512;not null"`
	GithubURL   string `gorm:"size:512"`
	Status      string `gorm:"size:16;default:active;index"`
	Metadata    string `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User       *User       `gorm:"foreignKey:UserID"`
	Executions []Execution `gorm:"foreignKey:ProjectID"`
	Files      []File      `gorm:"foreignKey:ProjectID"`
}
