// Package project provides project lifecycle operations.
package project

import (
	"errors"
	"fmt"

	"github.com/mkessy/devbench/internal/models"
	"github.com/mkessy/devbench/internal/validate"
	"gorm.io/gorm"
)

// ListFilters holds optional filters for listing projects.
type ListFilters struct {
	UserID string
	Status string
	Type   string
}

// ValidTransitions maps each project status to its valid next statuses.
var ValidTransitions = map[string][]string{
	"active":   {"archived", "error"},
	"archived": {"active"},
	"error":    {"active", "archived"},
}

// Create inserts a new project owned by an existing user.
func Create(db *gorm.DB, in validate.NewProject) (*models.Project, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", in.UserID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("project: check owner %s: %w", in.UserID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("project: owner not found: %s", in.UserID)
	}

	metadata, err := models.MarshalDocument(in.Metadata)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}

	status := in.Status
	if status == "" {
		status = "active"
	}

	id, err := models.NewID("prj")
	if err != nil {
		return nil, err
	}

	p := models.Project{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		UserID:      in.UserID,
		Type:        in.Type,
		Path:        in.Path,
		GithubURL:   in.GithubURL,
		Status:      status,
		Metadata:    metadata,
	}

	if err := db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("project: create: %w", err)
	}
	return &p, nil
}

// Get retrieves a project by ID, preloading Executions and Files.
func Get(db *gorm.DB, id string) (*models.Project, error) {
	var p models.Project
	if err := db.Preload("Executions").Preload("Files").Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project: not found: %s", id)
		}
		return nil, fmt.Errorf("project: get %s: %w", id, err)
	}
	return &p, nil
}

// List returns projects matching the given filters, ordered by creation time.
func List(db *gorm.DB, filters ListFilters) ([]models.Project, error) {
	q := db.Model(&models.Project{})

	if filters.UserID != "" {
		q = q.Where("user_id = ?", filters.UserID)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Type != "" {
		q = q.Where("type = ?", filters.Type)
	}

	var projects []models.Project
	if err := q.Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("project: list: %w", err)
	}
	return projects, nil
}

// Update modifies project fields. Status changes are validated against
// ValidTransitions.
func Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	var p models.Project
	if err := db.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("project: not found: %s", id)
		}
		return fmt.Errorf("project: get %s for update: %w", id, err)
	}

	if newStatus, ok := updates["status"].(string); ok {
		if !isValidTransition(p.Status, newStatus) {
			valid := ValidTransitions[p.Status]
			return fmt.Errorf("project: invalid status transition from %q to %q; valid transitions: %v", p.Status, newStatus, valid)
		}
	}

	if err := db.Model(&models.Project{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("project: update %s: %w", id, err)
	}
	return nil
}

// SetMetadata replaces the project's metadata document.
func SetMetadata(db *gorm.DB, id string, doc models.Document) error {
	metadata, err := models.MarshalDocument(doc)
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}
	return Update(db, id, map[string]interface{}{"metadata": metadata})
}

// Archive moves a project to the archived status.
func Archive(db *gorm.DB, id string) error {
	return Update(db, id, map[string]interface{}{"status": "archived"})
}

// isValidTransition checks whether a status transition is allowed.
// Re-stating the current status is always allowed.
func isValidTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, v := range ValidTransitions[from] {
		if v == to {
			return true
		}
	}
	return false
}
