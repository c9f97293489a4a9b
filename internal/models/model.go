package models

import "time"

// Model is an AI model tracked independently of any project.
type Model struct {
	ID               string `gorm:"primaryKey;size:32"`
	Name             string `gorm:"size:128;not null"`
	Source           string `gorm:"size:16;not null"`
	ModelID          string `gorm:"size:128;not null"`
	Status           string `gorm:"size:16;default:downloading;index"`
	Size             *int64
	Parameters       string `gorm:"size:32"`
	ContextLength    *int
	DownloadProgress int    `gorm:"default:0"`
	Config           string `gorm:"type:json"`
	Performance      string `gorm:"type:json"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
