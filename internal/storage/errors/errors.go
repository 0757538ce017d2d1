// Package errors provides custom errors for types implementing storage interfaces.
package errors

import (
	"fmt"
)

type (
	NotFoundError struct {
		Alias string
		Err   error
	}
	AlreadyExistsError struct {
		Alias string
		Err   error
	}
	ContextTimeoutExceededError struct {
		Err error
	}
	StatementPSQLError struct {
		Err error
	}
	ScanningPSQLError struct {
		Err error
	}
	ExecutionPSQLError struct {
		Err error
	}
	PartitionMissingError struct {
		Day string
		Err error
	}
)

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found in storage", e.Alias)
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: already exists in storage", e.Alias)
}

func (e *ContextTimeoutExceededError) Error() string {
	return fmt.Sprintf("%s: context timeout exceeded", e.Err.Error())
}

func (e *StatementPSQLError) Error() string {
	return fmt.Sprintf("%s: could not compile statement", e.Err.Error())
}

func (e *ScanningPSQLError) Error() string {
	return fmt.Sprintf("%s: could not scan rows", e.Err.Error())
}

func (e *ExecutionPSQLError) Error() string {
	return fmt.Sprintf("%s: could not query", e.Err.Error())
}

func (e *PartitionMissingError) Error() string {
	return fmt.Sprintf("%s: no metrics partition provisioned for day", e.Day)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func (e *AlreadyExistsError) Unwrap() error {
	return e.Err
}

func (e *ContextTimeoutExceededError) Unwrap() error {
	return e.Err
}

func (e *StatementPSQLError) Unwrap() error {
	return e.Err
}

func (e *ScanningPSQLError) Unwrap() error {
	return e.Err
}

func (e *ExecutionPSQLError) Unwrap() error {
	return e.Err
}

func (e *PartitionMissingError) Unwrap() error {
	return e.Err
}
