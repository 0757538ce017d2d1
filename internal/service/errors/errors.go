// Package errors provides custom errors for service-layer types.
package errors

import (
	"fmt"
)

type (
	ServiceFoundNilDependency struct {
		Msg string
	}
	InvalidURLError struct {
		Msg string
	}
	InvalidAliasError struct {
		Alias string
		Msg   string
	}
	AliasTakenError struct {
		Alias string
		Err   error
	}
	AllocationExhaustedError struct {
		Attempts int
		Err      error
	}
	NotFoundError struct {
		Alias string
		Err   error
	}
	ExpiredError struct {
		Alias string
	}
	PasswordRequiredError struct {
		Alias string
	}
	WrongPasswordError struct {
		Alias string
	}
	NotOwnerError struct {
		Alias string
	}
	EmptyCollectionError struct {
	}
	SessionInvalidError struct {
		Err error
	}
	SessionExpiredError struct {
	}
)

func (e *ServiceFoundNilDependency) Error() string {
	return e.Msg
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL: %s", e.Msg)
}

func (e *InvalidAliasError) Error() string {
	return fmt.Sprintf("%s: invalid alias: %s", e.Alias, e.Msg)
}

func (e *AliasTakenError) Error() string {
	return fmt.Sprintf("%s: alias is already taken", e.Alias)
}

func (e *AllocationExhaustedError) Error() string {
	return fmt.Sprintf("alias allocation exhausted after %d attempts", e.Attempts)
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found", e.Alias)
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("%s: link has expired", e.Alias)
}

func (e *PasswordRequiredError) Error() string {
	return fmt.Sprintf("%s: password required", e.Alias)
}

func (e *WrongPasswordError) Error() string {
	return fmt.Sprintf("%s: wrong password", e.Alias)
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("%s: not owned by requester", e.Alias)
}

func (e *EmptyCollectionError) Error() string {
	return "collection must include at least one URL"
}

func (e *SessionInvalidError) Error() string {
	return "session token is invalid"
}

func (e *SessionExpiredError) Error() string {
	return "session has expired"
}

func (e *AliasTakenError) Unwrap() error {
	return e.Err
}

func (e *AllocationExhaustedError) Unwrap() error {
	return e.Err
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func (e *SessionInvalidError) Unwrap() error {
	return e.Err
}
