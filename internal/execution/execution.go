// Package execution provides command execution record operations. It
// records runs; it does not run anything.
package execution

import (
	"errors"
	"fmt"
	"time"

	"github.com/mkessy/devbench/internal/models"
	"github.com/mkessy/devbench/internal/validate"
	"gorm.io/gorm"
)

// ListFilters holds optional filters for listing executions.
type ListFilters struct {
	ProjectID string
	Status    string
}

// FinishOpts holds the terminal fields recorded when an execution ends.
type FinishOpts struct {
	Status   string // completed or failed
	ExitCode *int
	Output   string
	Error    string
}

// Create inserts a new execution record against an existing project.
// StartTime is set at insert; omitted status defaults to "running".
func Create(db *gorm.DB, in validate.NewExecution) (*models.Execution, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("execution: %w", err)
	}

	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", in.ProjectID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("execution: check project %s: %w", in.ProjectID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("execution: project not found: %s", in.ProjectID)
	}

	status := in.Status
	if status == "" {
		status = "running"
	}

	id, err := models.NewID("exc")
	if err != nil {
		return nil, err
	}

	e := models.Execution{
		ID:        id,
		ProjectID: in.ProjectID,
		Command:   in.Command,
		Output:    in.Output,
		Error:     in.Error,
		ExitCode:  in.ExitCode,
		Status:    status,
		StartTime: time.Now(),
	}

	// A record created directly in a terminal state carries its end time.
	if status != "running" {
		now := e.StartTime
		e.EndTime = &now
	}

	if err := db.Create(&e).Error; err != nil {
		return nil, fmt.Errorf("execution: create: %w", err)
	}
	return &e, nil
}

// Get retrieves an execution by ID.
func Get(db *gorm.DB, id string) (*models.Execution, error) {
	var e models.Execution
	if err := db.Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("execution: not found: %s", id)
		}
		return nil, fmt.Errorf("execution: get %s: %w", id, err)
	}
	return &e, nil
}

// List returns executions matching the given filters, most recent first.
func List(db *gorm.DB, filters ListFilters) ([]models.Execution, error) {
	q := db.Model(&models.Execution{})

	if filters.ProjectID != "" {
		q = q.Where("project_id = ?", filters.ProjectID)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}

	var list []models.Execution
	if err := q.Order("start_time DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("execution: list: %w", err)
	}
	return list, nil
}

// Finish moves a running execution into a terminal state, recording the
// outcome fields and EndTime together.
func Finish(db *gorm.DB, id string, opts FinishOpts) error {
	if opts.Status != "completed" && opts.Status != "failed" {
		return fmt.Errorf("execution: finish status must be completed or failed, got %q", opts.Status)
	}

	e, err := Get(db, id)
	if err != nil {
		return err
	}
	if e.Status != "running" {
		return fmt.Errorf("execution: %s already finished with status %q", id, e.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":   opts.Status,
		"end_time": now,
	}
	if opts.ExitCode != nil {
		updates["exit_code"] = *opts.ExitCode
	}
	if opts.Output != "" {
		updates["output"] = opts.Output
	}
	if opts.Error != "" {
		updates["error"] = opts.Error
	}

	if err := db.Model(&models.Execution{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("execution: finish %s: %w", id, err)
	}
	return nil
}
