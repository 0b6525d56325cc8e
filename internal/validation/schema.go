package validation

import (
	_ "embed"
	"fmt"

	"todolist/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/task_draft.json
var taskDraftSchema []byte

//go:embed schemas/task_status.json
var taskStatusSchema []byte

// TaskValidator checks tasks against the embedded JSON schemas before they are persisted
type TaskValidator struct {
	draft  *gojsonschema.Schema
	status *gojsonschema.Schema
}

// NewTaskValidator compiles the task schemas
func NewTaskValidator() (*TaskValidator, error) {
	draft, err := LoadSchema(taskDraftSchema)
	if err != nil {
		return nil, fmt.Errorf("task draft schema: %w", err)
	}
	status, err := LoadSchema(taskStatusSchema)
	if err != nil {
		return nil, fmt.Errorf("task status schema: %w", err)
	}
	return &TaskValidator{draft: draft, status: status}, nil
}

// LoadSchema compiles a JSON schema document
func LoadSchema(schemaJSON []byte) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return schema, nil
}

// ValidateDraft validates a task draft. Failures are returned as *models.ValidationError.
func (v *TaskValidator) ValidateDraft(draft models.TaskDraft) error {
	return validate(v.draft, draft)
}

// ValidateStatus validates a status update
func (v *TaskValidator) ValidateStatus(status models.TaskStatus) error {
	return validate(v.status, map[string]any{"status": string(status)})
}

func validate(schema *gojsonschema.Schema, document any) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return fmt.Errorf("failed to validate: %w", err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return &models.ValidationError{Problems: problems}
	}

	return nil
}
