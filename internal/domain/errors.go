package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested job id does not exist.
var ErrNotFound = errors.New("job not found")

// InvalidArgumentError indicates a missing or malformed request field.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// NewInvalidArgument builds an InvalidArgumentError for a field.
func NewInvalidArgument(field, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Field: field, Reason: reason}
}

// InvalidStateError indicates an operation is not valid for the job's current
// status, e.g. fetching results before completion or cancelling a terminal
// job. It carries the status and progress observed at rejection time.
type InvalidStateError struct {
	Op       string
	Status   JobStatus
	Progress int
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: job is %s (progress %d%%)", e.Op, e.Status, e.Progress)
}

// UnknownOperationError indicates dispatch of an unregistered operation name.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

// IsInvalidArgument reports whether err is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var ia *InvalidArgumentError
	return errors.As(err, &ia)
}

// IsInvalidState reports whether err is an InvalidStateError, returning it if so.
func IsInvalidState(err error) (*InvalidStateError, bool) {
	var is *InvalidStateError
	if errors.As(err, &is) {
		return is, true
	}
	return nil, false
}
