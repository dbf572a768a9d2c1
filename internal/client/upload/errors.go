package upload

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrFileTooLarge    = errors.New("image file too large")
	ErrEmptyFile       = errors.New("image file is empty")
	ErrCredential      = errors.New("invalid upload credential")
)

// StorageError reports a failure in credential acquisition or the blob
// write. Stage is the task state the failure happened in.
type StorageError struct {
	Stage State
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("upload failed while %s: %v", e.Stage.Verb(), e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
