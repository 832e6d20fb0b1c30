package sorter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRoot marks a missing or non-directory source root. Fatal,
	// raised before any filesystem mutation.
	ErrInvalidRoot = errors.New("invalid root")
	// ErrFilesystem marks bucket creation or move failures.
	ErrFilesystem = errors.New("filesystem error")
	// ErrCancelled marks a user-declined confirmation or interrupted run.
	ErrCancelled = errors.New("cancelled")
)

// Wrap builds an error message that includes operation context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "sorter failure"
	}
	return strings.Join(parts, ": ")
}
