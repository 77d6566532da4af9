// Package validation provides struct validation for pipekit configuration.
//
// It wraps the go-playground validator and surfaces failures as
// errors.AppError values with per-field details.
//
//	type Config struct {
//	    ItemSize int    `json:"item_size" validate:"required,gt=0"`
//	    Command  string `json:"command" validate:"required"`
//	}
//	err := validation.Validate(cfg)
package validation
