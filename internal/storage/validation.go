// Package storage provides the blob persistence backends for dual-count.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrNilData     = errors.New("data cannot be nil")
	ErrInvalidTag  = errors.New("invalid checkpoint tag")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateBlob ensures the key is set and the payload is present.
func validateBlob(key string, data []byte) error {
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%w: %s", ErrNilData, key)
	}
	return nil
}

// validateTag rejects checkpoint tags that could escape into paths or
// shell arguments when listed or exported.
func validateTag(tag string) error {
	if err := validateString(tag, "tag"); err != nil {
		return err
	}
	if strings.Contains(tag, "/") || strings.Contains(tag, "\\") || strings.Contains(tag, "..") {
		return fmt.Errorf("%w: cannot contain path separators", ErrInvalidTag)
	}
	return nil
}
