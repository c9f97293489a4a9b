package models

import "time"

// Execution records one command run against a project. EndTime is set
// when the execution reaches a terminal status.
type Execution struct {
	ID        string `gorm:"primaryKey;size:32"`
	ProjectID string `gorm:"size:32;not null;index"`
	Command   string `gorm:"type:text;not null"`
	Output    string `gorm:"type:mediumtext"`
	Error     string `gorm:"type:text"`
	ExitCode  *int
	Status    string `gorm:"size:16;default:running;index"`
	StartTime time.Time
	EndTime   *time.Time

	Project *Project `gorm:"foreignKey:ProjectID"`
}
