// Package validate declares the insertable shape for each record type:
// the fields a caller supplies at creation time, excluding everything the
// storage layer generates (IDs and timestamps).
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mkessy/devbench/internal/models"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// NewUser is the insertable shape for User.
type NewUser struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required"`
}

// NewProject is the insertable shape for Project. Status defaults to
// "active" when omitted.
type NewProject struct {
	Name        string `validate:"required,max=128"`
	Description string
	UserID      string `validate:"required"`
	Type        string `validate:"required,oneof=local github template"`
	Path        string `validate:"required,max=512"`
	GithubURL   string `validate:"omitempty,max=512"`
	Status      string `validate:"omitempty,oneof=active archived error"`
	Metadata    models.Document
}

// NewModel is the insertable shape for Model. Status defaults to
// "downloading" and DownloadProgress to 0 when omitted.
type NewModel struct {
	Name             string `validate:"required,max=128"`
	Source           string `validate:"required,oneof=ollama huggingface custom"`
	ModelID          string `validate:"required,max=128"`
	Status           string `validate:"omitempty,oneof=downloading ready running error"`
	Size             *int64 `validate:"omitempty,min=0"`
	Parameters       string `validate:"omitempty,max=32"`
	ContextLength    *int   `validate:"omitempty,min=1"`
	DownloadProgress int    `validate:"min=0,max=100"`
	Config           models.Document
	Performance      models.Document
}

// NewExecution is the insertable shape for Execution. Status defaults to
// "running" when omitted; StartTime and EndTime are storage-managed.
type NewExecution struct {
	ProjectID string `validate:"required"`
	Command   string `validate:"required"`
	Output    string
	Error     string
	ExitCode  *int
	Status    string `validate:"omitempty,oneof=running completed failed"`
}

// NewFile is the insertable shape for File. Directories carry no content
// or size.
type NewFile struct {
	ProjectID string `validate:"required"`
	Path      string `validate:"required,max=512"`
	Content   *string
	Type      string `validate:"required,oneof=file directory"`
	Size      *int64 `validate:"omitempty,min=0"`
}

// Struct checks an insertable payload against its declared constraints.
// The returned error lists every failing field.
func Struct(payload interface{}) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldError(fe))
	}
	return fmt.Errorf("validate: %s", strings.Join(msgs, "; "))
}

// fieldError renders a single failed constraint in a readable form.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
