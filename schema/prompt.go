package schema

// Prompt types.
const (
	PromptInput    = "input"
	PromptPassword = "password"
	PromptNumber   = "number"
	PromptSelect   = "select"
	PromptConfirm  = "confirm"
)

// PromptTypes lists all valid prompt types.
var PromptTypes = []string{PromptInput, PromptPassword, PromptNumber, PromptSelect, PromptConfirm}

// PromptDeclaration declares one user input.
type PromptDeclaration struct {
	ID      string `json:"id" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=input password number select confirm"`
	Message string `json:"message,omitempty"`
	// Default is resolved through the value resolver before rendering.
	Default  *Value `json:"default,omitempty"`
	Required bool   `json:"required,omitempty"`
	// Choices applies to select prompts only.
	Choices []string `json:"choices,omitempty"`
	// Min and Max apply to number prompts only.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
	// Global prompts are answered once and shared across all tasks.
	Global bool `json:"global,omitempty"`
}
