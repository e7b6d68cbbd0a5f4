package apperr

import "fmt"

// ValidationError reports bad caller input (empty name, empty non-skip answer).
// The caller is expected to correct the request and retry.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InvalidStateError reports an operation invoked in a stage that does not
// permit it, e.g. answering after the last question.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

func NewInvalidStateError(format string, args ...any) *InvalidStateError {
	return &InvalidStateError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a session id with no persisted record.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamServiceError reports a failure of an external AI provider (LLM,
// transcription, TTS). Orchestration code converts these into fallback
// content; they surface to handlers only from the speech endpoints.
type UpstreamServiceError struct {
	Service string
	Err     error
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamServiceError) Unwrap() error {
	return e.Err
}

func NewUpstreamServiceError(service string, err error) *UpstreamServiceError {
	return &UpstreamServiceError{Service: service, Err: err}
}

// StorageError reports a persistence failure. Unlike upstream errors it is
// fatal to the triggering operation: acknowledged state must always be
// persisted state.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
