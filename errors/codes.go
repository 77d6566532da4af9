package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Construction errors
const (
	// ErrCodeInvalidConfig indicates a sink configuration is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodePipeCreate indicates the kernel pipe could not be created.
	ErrCodePipeCreate ErrorCode = "PIPE_CREATE_FAILED"
	// ErrCodeLaunch indicates the child process could not be started.
	ErrCodeLaunch ErrorCode = "PROCESS_LAUNCH_FAILED"
)

// Runtime errors
const (
	// ErrCodeWrite indicates a write to the child's stdin failed for a
	// reason other than backpressure. Backpressure is never an error.
	ErrCodeWrite ErrorCode = "WRITE_FAILED"
	// ErrCodeFdFlags indicates querying or setting descriptor status
	// flags failed.
	ErrCodeFdFlags ErrorCode = "FD_FLAGS_FAILED"
	// ErrCodeClosed indicates an operation on a sink that was already
	// closed.
	ErrCodeClosed ErrorCode = "SINK_CLOSED"
)

// Teardown errors
const (
	// ErrCodeReap indicates waiting on the child process failed.
	ErrCodeReap ErrorCode = "REAP_FAILED"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeInvalidConfig: false,
	ErrCodePipeCreate:    false,
	ErrCodeLaunch:        false,
	ErrCodeWrite:         false,
	ErrCodeFdFlags:       false,
	ErrCodeClosed:        false,
	ErrCodeReap:          false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Every code in the pipekit taxonomy is fatal to its scope; transient
// conditions (a full pipe buffer) are reported as partial progress, not
// as errors.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
