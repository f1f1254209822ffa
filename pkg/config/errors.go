package config

import (
	"errors"
	"fmt"
)

var (
	ErrNoConfig            = errors.New("no configuration file given")
	ErrNoFiles             = errors.New("no files configured")
	ErrNoStreamName        = errors.New("cannot derive a stream name, set entity")
	ErrSchemaViolation     = errors.New("settings do not match schema")
	ErrUnsupportedDialect  = errors.New("unsupported CSV dialect option")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrUnknownType         = errors.New("unknown column type")
	ErrDuplicateStream     = errors.New("duplicate stream name")
)

// ConfigurationError reports settings that prevent the tap from running.
// Source names the offending file or setting.
type ConfigurationError struct {
	Source string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("configuration: %v", e.Err)
	}
	return fmt.Sprintf("configuration: %s: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Errorf builds a ConfigurationError. The format may use %w.
func Errorf(source, format string, args ...any) error {
	return &ConfigurationError{Source: source, Err: fmt.Errorf(format, args...)}
}
