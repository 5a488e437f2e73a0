// Package validation checks values arriving from input devices and config
// before they reach the simulation.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/opd-ai/go-bounce/pkg/physics"
)

// Limits for strings coming from outside the core
const (
	MaxKeyNameLen = 32
	MaxTitleLen   = 64
)

var (
	// ErrNonFinite is returned for NaN or infinite coordinates
	ErrNonFinite = errors.New("non-finite coordinate")
	// ErrInvalidText is returned for key names and titles that fail checks
	ErrInvalidText = errors.New("invalid text")
)

// ValidatePosition rejects pointer positions that would poison the physics
func ValidatePosition(pos physics.Vector2D) error {
	if !pos.IsFinite() {
		return fmt.Errorf("%w: (%v, %v)", ErrNonFinite, pos.X, pos.Y)
	}
	return nil
}

// ValidateKeyName trims a key name and checks it. Empty and unknown names are
// allowed; the input mapper ignores keys it does not bind.
func ValidateKeyName(key string) (string, error) {
	if len(key) > MaxKeyNameLen {
		return "", fmt.Errorf("%w: key name too long: %d bytes (max %d)", ErrInvalidText, len(key), MaxKeyNameLen)
	}
	if !utf8.ValidString(key) {
		return "", fmt.Errorf("%w: key name contains invalid UTF-8", ErrInvalidText)
	}

	trimmed := strings.TrimSpace(key)
	for _, r := range trimmed {
		if !unicode.IsPrint(r) {
			return "", fmt.Errorf("%w: key name contains unprintable characters", ErrInvalidText)
		}
	}
	return trimmed, nil
}

// ValidateTitle validates and sanitizes a window title
func ValidateTitle(title string) (string, error) {
	if len(title) > MaxTitleLen {
		return "", fmt.Errorf("%w: title too long: %d bytes (max %d)", ErrInvalidText, len(title), MaxTitleLen)
	}
	if !utf8.ValidString(title) {
		return "", fmt.Errorf("%w: title contains invalid UTF-8", ErrInvalidText)
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", fmt.Errorf("%w: title cannot be empty", ErrInvalidText)
	}

	// Drop control characters
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, trimmed), nil
}
