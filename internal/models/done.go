package models

import (
	"bytes"
	"encoding/json"
)

// DoneFlag is the parsed "done" field of a status toggle.
// Only a boolean true or the exact string "true" counts as done.
type DoneFlag bool

// ParseDoneFlag parses a form value
func ParseDoneFlag(raw string) DoneFlag {
	return DoneFlag(raw == "true")
}

// UnmarshalJSON accepts a JSON boolean or string. Any other value is false.
func (d *DoneFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*d = DoneFlag(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = ParseDoneFlag(s)
		return nil
	}

	*d = false
	return nil
}

// Status maps the flag onto a task status
func (d DoneFlag) Status() TaskStatus {
	if d {
		return TaskStatusCompleted
	}
	return TaskStatusPending
}
