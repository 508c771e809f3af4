package infra

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout          = errors.New("timeout error")
	ErrNetwork          = errors.New("network error")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrDecode           = errors.New("decode error")
)

func NewTimeoutError(details string) error {
	return fmt.Errorf("%w: %s", ErrTimeout, details)
}

func NewNetworkError(details string) error {
	return fmt.Errorf("%w: %s", ErrNetwork, details)
}

func NewUnexpectedStatusError(status int) error {
	return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
}

func NewDecodeError(err error) error {
	return fmt.Errorf("%w: %w", ErrDecode, err)
}

// IsRetriable returns true if the error is timeout or network (5xx), so the next poll may succeed.
func IsRetriable(err error) bool {
	return err != nil && (errors.Is(err, ErrTimeout) || errors.Is(err, ErrNetwork))
}
