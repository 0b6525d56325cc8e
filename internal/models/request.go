package models

// CreateTaskRequest represents the create task form
type CreateTaskRequest struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description"`
}

// ToggleTaskRequest represents a JSON status toggle body.
// Form submissions are parsed with ParseDoneFlag instead.
type ToggleTaskRequest struct {
	Done DoneFlag `json:"done"`
}
