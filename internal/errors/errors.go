// Package errors provides structured error types for the skill installer.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Error codes for installer operations.
const (
	// Usage errors
	CodeUsageMissingTargets = "USAGE_001" // --install given without targets
	CodeUsageInvalidFlags   = "USAGE_002" // Conflicting or malformed flags

	// Target errors
	CodeTargetUnknown = "TARGET_001" // Identifier not in registry
	CodeTargetNoPaths = "TARGET_002" // Target has no candidate paths

	// Skill bundle errors
	CodeSkillLoad    = "SKILL_001" // Bundle could not be read
	CodeSkillInvalid = "SKILL_002" // Bundle failed validation

	// Config errors
	CodeConfigParse        = "CONFIG_001" // Config file could not be parsed
	CodeConfigInvalidValue = "CONFIG_002" // Invalid value

	// IO errors
	CodeIOFileNotFound = "IO_001" // File not found
	CodeIOPermission   = "IO_002" // Permission denied
	CodeIODiskFull     = "IO_003" // Disk full
	CodeIOReadError    = "IO_004" // Read error
	CodeIOWriteError   = "IO_005" // Write error
)

// InstallError is the structured error type for installer operations.
type InstallError struct {
	Code    string         `json:"code"`              // Error code (e.g., "TARGET_001")
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Context (target, path, etc.)
	Cause   error          `json:"-"`                 // Wrapped error (not serialized)
}

// Error implements the error interface.
func (e *InstallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *InstallError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error.
func (e *InstallError) WithDetail(key string, value any) *InstallError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// MarshalJSON implements json.Marshaler with cause error message.
func (e *InstallError) MarshalJSON() ([]byte, error) {
	type alias InstallError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// New creates a new InstallError.
func New(code, message string) *InstallError {
	return &InstallError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new InstallError with formatted message.
func Newf(code, format string, args ...any) *InstallError {
	return &InstallError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with an InstallError.
func Wrap(code, message string, err error) *InstallError {
	return &InstallError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted InstallError.
func Wrapf(code string, err error, format string, args ...any) *InstallError {
	return &InstallError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// --- Usage Errors ---

// UsageMissingTargets creates the error reported when --install has no value.
func UsageMissingTargets() *InstallError {
	return New(CodeUsageMissingTargets, "Please specify targets: --install target1,target2")
}

// UsageInvalidFlags creates an error for an invalid flag combination.
func UsageInvalidFlags(reason string) *InstallError {
	return Newf(CodeUsageInvalidFlags, "invalid flags: %s", reason).
		WithDetail("reason", reason)
}

// --- Target Errors ---

// TargetUnknown creates an error for an identifier missing from the registry.
func TargetUnknown(id string) *InstallError {
	return Newf(CodeTargetUnknown, "unknown target: %s", id).
		WithDetail("target", id)
}

// TargetNoPaths creates an error for a target without candidate paths.
func TargetNoPaths(id string) *InstallError {
	return Newf(CodeTargetNoPaths, "no paths configured for %s", id).
		WithDetail("target", id)
}

// --- Skill Errors ---

// SkillLoad creates an error for a bundle that could not be read.
func SkillLoad(source string, err error) *InstallError {
	return Wrap(CodeSkillLoad, "failed to load skill bundle", err).
		WithDetail("source", source)
}

// SkillInvalid creates an error for a bundle that failed validation.
func SkillInvalid(reason string) *InstallError {
	return Newf(CodeSkillInvalid, "invalid skill bundle: %s", reason)
}

// --- Config Errors ---

// ConfigParse creates an error for a config file that failed to parse.
func ConfigParse(path string, err error) *InstallError {
	return Wrap(CodeConfigParse, "failed to parse config", err).
		WithDetail("path", path)
}

// ConfigInvalidValue creates an error for invalid config value.
func ConfigInvalidValue(field string, value any, reason string) *InstallError {
	return Newf(CodeConfigInvalidValue, "invalid config value for %s: %s", field, reason).
		WithDetail("field", field).
		WithDetail("value", value).
		WithDetail("reason", reason)
}

// --- IO Errors ---

// IOFileNotFound creates an error for missing file.
func IOFileNotFound(path string) *InstallError {
	return Newf(CodeIOFileNotFound, "file not found: %s", path).
		WithDetail("path", path)
}

// IOPermissionDenied creates an error for permission issues.
func IOPermissionDenied(path string, err error) *InstallError {
	return Wrap(CodeIOPermission, "permission denied", err).
		WithDetail("path", path)
}

// IODiskFull creates an error for disk space issues.
func IODiskFull(path string, err error) *InstallError {
	return Wrap(CodeIODiskFull, "disk full", err).
		WithDetail("path", path)
}

// IOReadError creates an error for read failures.
func IOReadError(path string, err error) *InstallError {
	return Wrap(CodeIOReadError, "failed to read file", err).
		WithDetail("path", path)
}

// IOWriteError creates an error for write failures.
func IOWriteError(path string, err error) *InstallError {
	return Wrap(CodeIOWriteError, "failed to write file", err).
		WithDetail("path", path)
}

// HasCode checks if an error is an InstallError with the given code.
// It handles wrapped errors by unwrapping to find an InstallError.
func HasCode(err error, code string) bool {
	var ierr *InstallError
	if errors.As(err, &ierr) {
		return ierr.Code == code
	}
	return false
}

// Code returns the error code if err is an InstallError, empty string otherwise.
// It handles wrapped errors by unwrapping to find an InstallError.
func Code(err error) string {
	var ierr *InstallError
	if errors.As(err, &ierr) {
		return ierr.Code
	}
	return ""
}

// IsCancelled reports whether err represents an operator cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// ExitCode maps an error returned from a run to the process exit code.
// Cancellation is a clean exit.
func ExitCode(err error) int {
	if err == nil || IsCancelled(err) {
		return 0
	}
	return 1
}
