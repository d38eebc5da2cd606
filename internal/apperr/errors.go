// Package apperr defines the sentinel errors shared across the application.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrImportFormat = errors.New("unrecognized import format")
	ErrStore        = errors.New("record store failure")
	ErrCache        = errors.New("local cache failure")
	ErrAssistant    = errors.New("assistant query failure")
)
