package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeWrite, "write failed")
	if err.Code != ErrCodeWrite {
		t.Errorf("expected code %s, got %s", ErrCodeWrite, err.Code)
	}
	if err.Message != "write failed" {
		t.Errorf("expected message 'write failed', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("WRITE_FAILED should not be retryable")
	}
}

func TestAppError_LaunchFailed_Details(t *testing.T) {
	cause := fmt.Errorf("fork: resource temporarily unavailable")
	err := LaunchFailed("wc -c", cause)
	if err.Code != ErrCodeLaunch {
		t.Errorf("expected PROCESS_LAUNCH_FAILED, got %s", err.Code)
	}
	if err.Details["command"] != "wc -c" {
		t.Errorf("expected command detail, got %v", err.Details["command"])
	}
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
}

func TestAppError_InvalidConfig_Field(t *testing.T) {
	err := InvalidConfig("item_size", "must be positive")
	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("expected INVALID_CONFIG, got %s", err.Code)
	}
	if err.Details["field"] != "item_size" {
		t.Errorf("expected field=item_size, got %v", err.Details["field"])
	}
}

func TestAppError_Error_IncludesCause(t *testing.T) {
	err := PipeCreateFailed(fmt.Errorf("too many open files"))
	msg := err.Error()
	if !strings.Contains(msg, "PIPE_CREATE_FAILED") {
		t.Errorf("expected code in message, got %q", msg)
	}
	if !strings.Contains(msg, "too many open files") {
		t.Errorf("expected cause in message, got %q", msg)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("broken pipe")
	err := WriteFailed(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := ReapFailed(1234, fmt.Errorf("no child processes")).WithDetail("phase", "teardown")
	if err.Details["pid"] != 1234 {
		t.Errorf("expected pid detail, got %v", err.Details["pid"])
	}
	if err.Details["phase"] != "teardown" {
		t.Errorf("expected phase detail, got %v", err.Details["phase"])
	}
}

func TestIsCode(t *testing.T) {
	err := FdFlagsFailed("F_SETFL", fmt.Errorf("bad file descriptor"))
	wrapped := fmt.Errorf("teardown: %w", err)
	if !IsCode(wrapped, ErrCodeFdFlags) {
		t.Error("expected IsCode to match through wrapping")
	}
	if IsCode(wrapped, ErrCodeReap) {
		t.Error("expected IsCode to reject a different code")
	}
	if IsCode(fmt.Errorf("plain"), ErrCodeReap) {
		t.Error("expected IsCode to reject a non-AppError")
	}
}

func TestIsRetryableCode_AllFatal(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeInvalidConfig, ErrCodePipeCreate, ErrCodeLaunch,
		ErrCodeWrite, ErrCodeFdFlags, ErrCodeClosed, ErrCodeReap,
	}
	for _, code := range codes {
		if IsRetryableCode(code) {
			t.Errorf("code %s should not be retryable", code)
		}
	}
}

func TestClosed(t *testing.T) {
	err := Closed()
	if err.Code != ErrCodeClosed {
		t.Errorf("expected SINK_CLOSED, got %s", err.Code)
	}
}
