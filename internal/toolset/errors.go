package toolset

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// -- Error Types --

// UnknownOperationError is returned when the operation name is not recognised.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("Unknown function: %s", e.Name)
}
func (e *UnknownOperationError) Is(target error) bool { return target == ErrUnknownOperation }

// ArgumentError is returned when arguments cannot be decoded for an operation.
type ArgumentError struct {
	Operation string
	Cause     error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Operation, e.Cause)
}
func (e *ArgumentError) Unwrap() error        { return e.Cause }
func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArguments }

// PanicError is returned when an operation panics.
type PanicError struct {
	Operation string
	Value     any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("internal failure in %s: %v", e.Operation, e.Value)
}
