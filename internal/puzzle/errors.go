package puzzle

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks a level definition that violates a catalog invariant.
// It is only ever returned while a level is being loaded.
var ErrConfiguration = errors.New("puzzle: invalid level configuration")

// ErrInvalidOperation marks a call whose precondition the caller could have
// checked first (settled piece, incomplete arrangement, wrong phase).
var ErrInvalidOperation = errors.New("puzzle: invalid operation")

var (
	// ErrLevelOutOfRange is returned for level numbers outside [1, max].
	ErrLevelOutOfRange = fmt.Errorf("%w: level out of range", ErrInvalidOperation)

	// ErrSessionComplete is returned by loads attempted after the last level.
	ErrSessionComplete = fmt.Errorf("%w: session complete", ErrInvalidOperation)
)

// ConfigError describes why a level definition was rejected.
type ConfigError struct {
	Level  int
	Reason string
}

// Error implements error.
func (e *ConfigError) Error() string {
	if e.Level > 0 {
		return fmt.Sprintf("puzzle: level %d: %s", e.Level, e.Reason)
	}
	return "puzzle: " + e.Reason
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// ConfigErrorf builds a ConfigError for the given level.
func ConfigErrorf(level int, format string, args ...any) error {
	return &ConfigError{Level: level, Reason: fmt.Sprintf(format, args...)}
}
