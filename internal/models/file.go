package models

import "time"

// File is a project tree entry. Directories share the table: they carry
// the "directory" type and no content.
type File struct {
	ID         string  `gorm:"primaryKey;size:32"`
	ProjectID  string  `gorm:"size:32;not null;uniqueIndex:idx_project_path"`
	Path       string  `gorm:"size:512;not null;uniqueIndex:idx_project_path"`
	Content    *string `gorm:"type:mediumtext"`
	Type       string  `gorm:"size:16;not null"`
	Size       *int64
	ModifiedAt time.Time

	Project *Project `gorm:"foreignKey:ProjectID"`
}
