// Package common provides shared constants, types, and utilities
// used across the Twingate Tray application.
package common

import "errors"

// Sentinel errors for tray operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Network client errors.
	ErrProviderUnavailable   = errors.New("network client unavailable")
	ErrProviderMalformed     = errors.New("malformed network client output")
	ErrProviderNonZeroExit   = errors.New("network client exited with failure")
	ErrSubprocessSpawnFailed = errors.New("subprocess could not be started")
	ErrElevationUnavailable  = errors.New("elevation command not available")

	// Menu errors.
	ErrPublishFailed = errors.New("menu publish failed")
	ErrUnknownAction = errors.New("unknown menu action")

	// Action errors.
	ErrResourceNotFound     = errors.New("resource not found")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")

	// History errors.
	ErrJournalClosed = errors.New("history journal closed")

	// Configuration errors.
	ErrConfigLoad    = errors.New("failed to load configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
