package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCapabilityUnavailable marks a missing optional dependency. Strategies
	// skip silently when they see it; it never fails a request.
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	// ErrStrategyFailed marks a strategy that was attempted and errored. The
	// chain logs it and advances.
	ErrStrategyFailed = errors.New("strategy failed")
	// ErrFilesystemFatal marks an unwritable output target. It is the only
	// strategy-originated error allowed to terminate a request.
	ErrFilesystemFatal = errors.New("filesystem fatal")
	// ErrValidation marks a caller mistake (bad geometry, contested output path).
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component/operation context while
// tagging it with the provided marker for later classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrStrategyFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether err must terminate the request with a non-zero exit.
// Everything else is recoverable by advancing the strategy chain.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrFilesystemFatal) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConfiguration)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
