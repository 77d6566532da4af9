package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/pipekit/errors"
)

type sinkParams struct {
	ItemSize int    `json:"item_size" validate:"required,gt=0"`
	Command  string `json:"command" validate:"required"`
	Shell    string `json:"shell,omitempty"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(sinkParams{ItemSize: 4, Command: "wc -c"})
	if err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
}

func TestValidate_MissingCommand(t *testing.T) {
	err := Validate(sinkParams{ItemSize: 4})
	if err == nil {
		t.Fatal("expected error for missing command")
	}
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
	if !strings.Contains(err.Error(), "command") {
		t.Errorf("expected field name in message, got %q", err.Error())
	}
}

func TestValidate_NonPositiveItemSize(t *testing.T) {
	err := Validate(sinkParams{ItemSize: -1, Command: "wc -c"})
	if err == nil {
		t.Fatal("expected error for negative item size")
	}
	if !strings.Contains(err.Error(), "greater than") {
		t.Errorf("expected gt message, got %q", err.Error())
	}
}

func TestValidate_FieldDetails(t *testing.T) {
	err := Validate(sinkParams{})
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected field details, got %v", appErr.Details)
	}
	if len(fields) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(fields))
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("ItemSize"); got != "item_size" {
		t.Errorf("expected item_size, got %q", got)
	}
	if got := toSnakeCase("command"); got != "command" {
		t.Errorf("expected command, got %q", got)
	}
}
