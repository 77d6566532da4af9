// Package errors provides unified error handling for pipekit.
// It implements structured error types with machine-readable codes
// and retryable detection for pipe, subprocess, and descriptor failures.
package errors
