package logger

// Common structured field names used across the engine.
const (
	FieldComponent = "component"
	FieldTask      = "task"
	FieldType      = "type"
	FieldVariable  = "variable"
	FieldPath      = "path"
	FieldRunID     = "run_id"
	FieldDuration  = "duration"
)
