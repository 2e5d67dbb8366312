package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration-time errors (fatal before any task executes)
const (
	// ErrCodeConfiguration indicates a malformed or inconsistent task configuration.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeValidation indicates a task set failed validation.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeCycle indicates the dependency graph contains a cycle.
	ErrCodeCycle ErrorCode = "CYCLE_ERROR"
)

// Run-time errors
const (
	// ErrCodeResolution indicates a variable or prompt default failed to resolve.
	ErrCodeResolution ErrorCode = "RESOLUTION_FAILURE"
	// ErrCodeExecution indicates a task handler failed while executing.
	ErrCodeExecution ErrorCode = "EXECUTION_FAILURE"
	// ErrCodeTimeout indicates a subprocess exceeded its time bound.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var fatalCodes = map[ErrorCode]bool{
	ErrCodeConfiguration: true,
	ErrCodeValidation:    true,
	ErrCodeCycle:         true,
	ErrCodeExecution:     true,
	ErrCodeInternal:      true,
	ErrCodeResolution:    false,
	ErrCodeTimeout:       false,
}

// IsFatalCode returns true if the error code aborts the run.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
