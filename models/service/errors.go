package service

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorKind classifies an OperationError so the API layer can map it
// to a response status without parsing message text.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindNotFound       ErrorKind = "not_found"
	KindStorageRead    ErrorKind = "storage_read"
	KindStorageWrite   ErrorKind = "storage_write"
	KindStorageDelete  ErrorKind = "storage_delete"
	KindMetadataRead   ErrorKind = "metadata_read"
	KindMetadataWrite  ErrorKind = "metadata_write"
	KindMetadataDelete ErrorKind = "metadata_delete"
	KindDownload       ErrorKind = "download"
)

// OperationError is the error type all lifecycle and aggregation
// operations return. Identifier is the file name or record ID the
// operation was working on when it failed. Source is the file:line
// that created the error, for the server-side log only; no field of
// this struct other than the Kind-derived status ever reaches a client.
type OperationError struct {
	Err        error
	Identifier string
	Kind       ErrorKind
	Message    string
	Source     string
}

// NewOperationError returns a new OperationError. Param identifier is
// the file name or record ID involved. Param err is the underlying
// error from the blob or metadata store and may be nil.
func NewOperationError(kind ErrorKind, identifier, message string, err error) *OperationError {
	_, filename, line, ok := runtime.Caller(1)
	source := "unknown:0"
	if ok {
		source = fmt.Sprintf("%s:%d", filename, line)
	}
	return &OperationError{
		Err:        err,
		Identifier: identifier,
		Kind:       kind,
		Message:    message,
		Source:     source,
	}
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Detail returns the full server-side description of the error,
// including where it was raised and the underlying store error.
func (e *OperationError) Detail() string {
	underlying := ""
	if e.Err != nil {
		underlying = fmt.Sprintf(" (underlying error: %s)", e.Err.Error())
	}
	return fmt.Sprintf("(kind: %s) (identifier: %s) (message: %s) (source: %s)%s",
		e.Kind, e.Identifier, e.Message, e.Source, underlying)
}

// KindOf returns the ErrorKind of err, or an empty ErrorKind if err
// is not an OperationError.
func KindOf(err error) ErrorKind {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return ErrorKind("")
}

// IsNotFound reports whether err is an OperationError with KindNotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
