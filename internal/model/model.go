// Package model provides AI model registry operations.
package model

import (
	"errors"
	"fmt"

	"github.com/mkessy/devbench/internal/models"
	"github.com/mkessy/devbench/internal/validate"
	"gorm.io/gorm"
)

// ListFilters holds optional filters for listing models.
type ListFilters struct {
	Source string
	Status string
}

// ValidTransitions maps each model status to its valid next statuses.
// The lifecycle runs download → ready → running, with error reachable
// from any active state and retryable back into downloading.
var ValidTransitions = map[string][]string{
	"downloading": {"ready", "error"},
	"ready":       {"running", "error"},
	"running":     {"ready", "error"},
	"error":       {"downloading"},
}

// Create registers a new model.
func Create(db *gorm.DB, in validate.NewModel) (*models.Model, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	config, err := models.MarshalDocument(in.Config)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	performance, err := models.MarshalDocument(in.Performance)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	status := in.Status
	if status == "" {
		status = "downloading"
	}

	id, err := models.NewID("mdl")
	if err != nil {
		return nil, err
	}

	m := models.Model{
		ID:               id,
		Name:             in.Name,
		Source:           in.Source,
		ModelID:          in.ModelID,
		Status:           status,
		Size:             in.Size,
		Parameters:       in.Parameters,
		ContextLength:    in.ContextLength,
		DownloadProgress: in.DownloadProgress,
		Config:           config,
		Performance:      performance,
	}

	if err := db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("model: create: %w", err)
	}
	return &m, nil
}

// Get retrieves a model by ID.
func Get(db *gorm.DB, id string) (*models.Model, error) {
	var m models.Model
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("model: not found: %s", id)
		}
		return nil, fmt.Errorf("model: get %s: %w", id, err)
	}
	return &m, nil
}

// List returns models matching the given filters, ordered by creation time.
func List(db *gorm.DB, filters ListFilters) ([]models.Model, error) {
	q := db.Model(&models.Model{})

	if filters.Source != "" {
		q = q.Where("source = ?", filters.Source)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}

	var list []models.Model
	if err := q.Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("model: list: %w", err)
	}
	return list, nil
}

// UpdateProgress records download progress (0-100). Reaching 100 while
// downloading promotes the model to ready.
func UpdateProgress(db *gorm.DB, id string, progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("model: progress %d out of range [0, 100]", progress)
	}

	m, err := Get(db, id)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"download_progress": progress}
	if progress == 100 && m.Status == "downloading" {
		updates["status"] = "ready"
	}

	if err := db.Model(&models.Model{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("model: update progress %s: %w", id, err)
	}
	return nil
}

// UpdateStatus moves a model through its lifecycle, validating the
// transition against ValidTransitions.
func UpdateStatus(db *gorm.DB, id, status string) error {
	m, err := Get(db, id)
	if err != nil {
		return err
	}

	if !isValidTransition(m.Status, status) {
		valid := ValidTransitions[m.Status]
		return fmt.Errorf("model: invalid status transition from %q to %q; valid transitions: %v", m.Status, status, valid)
	}

	updates := map[string]interface{}{"status": status}
	if status == "downloading" {
		// Retry resets progress.
		updates["download_progress"] = 0
	}

	if err := db.Model(&models.Model{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("model: update status %s: %w", id, err)
	}
	return nil
}

// SetConfig replaces the model's config document.
func SetConfig(db *gorm.DB, id string, doc models.Document) error {
	return setDocument(db, id, "config", doc)
}

// SetPerformance replaces the model's performance document.
func SetPerformance(db *gorm.DB, id string, doc models.Document) error {
	return setDocument(db, id, "performance", doc)
}

func setDocument(db *gorm.DB, id, column string, doc models.Document) error {
	if _, err := Get(db, id); err != nil {
		return err
	}
	encoded, err := models.MarshalDocument(doc)
	if err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if err := db.Model(&models.Model{}).Where("id = ?", id).Update(column, encoded).Error; err != nil {
		return fmt.Errorf("model: set %s on %s: %w", column, id, err)
	}
	return nil
}

// isValidTransition checks whether a status transition is allowed.
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
