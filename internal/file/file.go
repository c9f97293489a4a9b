// Package file provides project file tree record operations. Rows mirror
// a project's tree; nothing here touches the filesystem.
package file

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkessy/devbench/internal/models"
	"github.com/mkessy/devbench/internal/validate"
	"gorm.io/gorm"
)

// Put inserts or updates the entry at (project, path). Directories never
// carry content or size, whatever the caller supplied.
func Put(db *gorm.DB, in validate.NewFile) (*models.File, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("file: %w", err)
	}

	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", in.ProjectID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("file: check project %s: %w", in.ProjectID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("file: project not found: %s", in.ProjectID)
	}

	content := in.Content
	size := in.Size
	if in.Type == "directory" {
		content = nil
		size = nil
	}

	var existing models.File
	err := db.Where("project_id = ? AND path = ?", in.ProjectID, in.Path).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"content":     content,
			"type":        in.Type,
			"size":        size,
			"modified_at": time.Now(),
		}
		if err := db.Model(&models.File{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("file: update %s: %w", existing.ID, err)
		}
		return Get(db, in.ProjectID, in.Path)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to insert
	default:
		return nil, fmt.Errorf("file: lookup %s in %s: %w", in.Path, in.ProjectID, err)
	}

	id, err := models.NewID("fil")
	if err != nil {
		return nil, err
	}

	f := models.File{
		ID:         id,
		ProjectID:  in.ProjectID,
		Path:       in.Path,
		Content:    content,
		Type:       in.Type,
		Size:       size,
		ModifiedAt: time.Now(),
	}

	if err := db.Create(&f).Error; err != nil {
		return nil, fmt.Errorf("file: create: %w", err)
	}
	return &f, nil
}

// Get retrieves the entry at (project, path).
func Get(db *gorm.DB, projectID, path string) (*models.File, error) {
	var f models.File
	if err := db.Where("project_id = ? AND path = ?", projectID, path).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("file: not found: %s in %s", path, projectID)
		}
		return nil, fmt.Errorf("file: get %s in %s: %w", path, projectID, err)
	}
	return &f, nil
}

// List returns a project's entries, optionally restricted to a path
// prefix, ordered by path.
func List(db *gorm.DB, projectID, prefix string) ([]models.File, error) {
	q := db.Model(&models.File{}).Where("project_id = ?", projectID)

	if prefix != "" {
		q = q.Where("path = ? OR path LIKE ?", prefix, strings.TrimSuffix(prefix, "/")+"/%")
	}

	var files []models.File
	if err := q.Order("path ASC").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("file: list %s: %w", projectID, err)
	}
	return files, nil
}

// Remove deletes the entry at (project, path).
func Remove(db *gorm.DB, projectID, path string) error {
	res := db.Where("project_id = ? AND path = ?", projectID, path).Delete(&models.File{})
	if res.Error != nil {
		return fmt.Errorf("file: remove %s in %s: %w", path, projectID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("file: not found: %s in %s", path, projectID)
	}
	return nil
}
