package schema

import (
	"encoding/json"
	"fmt"
)

// StringList decodes a JSON string or array of strings.
type StringList []string

// UnmarshalJSON accepts "a" or ["a", "b"].
func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("schema: expected string or string array: %w", err)
	}
	*s = many
	return nil
}

// TaskConfiguration is a task configuration document.
type TaskConfiguration struct {
	// Schema is an optional JSON-Schema pointer, consumed by external
	// validators and ignored by the engine.
	Schema       string                `json:"$schema,omitempty"`
	Name         string                `json:"name" validate:"required"`
	Description  string                `json:"description,omitempty"`
	Extends      StringList            `json:"extends,omitempty"`
	Enabled      Enabled               `json:"enabled,omitempty"`
	Dependencies []string              `json:"dependencies,omitempty"`
	Variables    []VariableDeclaration `json:"variables,omitempty" validate:"dive"`
	Prompts      []PromptDeclaration   `json:"prompts,omitempty" validate:"dive"`
	Tasks        []TaskDeclaration     `json:"tasks,omitempty" validate:"dive"`
}

// TaskDeclaration is one declared unit of project mutation.
type TaskDeclaration struct {
	ID           string                `json:"id" validate:"required"`
	Name         string                `json:"name,omitempty"`
	Description  string                `json:"description,omitempty"`
	Type         string                `json:"type" validate:"required"`
	Config       map[string]any        `json:"config,omitempty"`
	Required     *bool                 `json:"required,omitempty"`
	Enabled      Enabled               `json:"enabled,omitempty"`
	Dependencies []string              `json:"dependencies,omitempty"`
	Prompts      []PromptDeclaration   `json:"prompts,omitempty" validate:"dive"`
	Variables    []VariableDeclaration `json:"variables,omitempty" validate:"dive"`
}

// IsRequired reports whether a failure of this task aborts the run.
// Tasks are required unless declared otherwise.
func (t *TaskDeclaration) IsRequired() bool {
	return t.Required == nil || *t.Required
}

// VariableDeclaration binds an identifier to a literal or value spec.
type VariableDeclaration struct {
	ID    string `json:"id" validate:"required"`
	Value Value  `json:"value"`
}
