package diag

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is matched by every *SyntaxError.
	ErrSyntax = errors.New("syntax error")
	// ErrState is matched by every *StateError.
	ErrState = errors.New("state error")
	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("configuration error")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation error")
)

// SyntaxError is a fatal parse or refinement failure at a stylesheet position.
type SyntaxError struct {
	Code    Code
	Line    int
	Column  int
	Message string
}

// NewSyntaxError builds a SyntaxError; the message defaults to the code title.
func NewSyntaxError(code Code, line, column int, format string, args ...any) *SyntaxError {
	msg := code.Title()
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &SyntaxError{Code: code, Line: line, Column: column, Message: msg}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s %s", e.Line, e.Column, e.Code.ID(), e.Message)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// StateError reports an operation that is invalid for the current state of a node.
type StateError struct {
	Code    Code
	Op      string
	Message string
}

// NewStateError builds a StateError for the named operation.
func NewStateError(code Code, op string) *StateError {
	return &StateError{Code: code, Op: op, Message: code.Title()}
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Op, e.Code.ID(), e.Message)
}

func (e *StateError) Unwrap() error { return ErrState }

// ConfigError is a configuration value rejected before any parsing happens.
type ConfigError struct {
	Code    Code
	Subject string
	Message string
}

// NewConfigError builds a ConfigError about subject.
func NewConfigError(code Code, subject string, format string, args ...any) *ConfigError {
	msg := code.Title()
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &ConfigError{Code: code, Subject: subject, Message: msg}
}

func (e *ConfigError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s %s", e.Code.ID(), e.Message)
	}
	return fmt.Sprintf("%s: %s %s", e.Subject, e.Code.ID(), e.Message)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// ValidationError is raised by validator plugins after rework.
type ValidationError struct {
	Code    Code
	Line    int
	Column  int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d:%d: %s %s", e.Line, e.Column, e.Code.ID(), e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Position extracts a line and column from any error of this package.
func Position(err error) (line, column int, ok bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Line, se.Column, true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Line, ve.Column, true
	}
	return 0, 0, false
}

// CodeOf extracts the Code from any error of this package.
func CodeOf(err error) Code {
	var (
		se *SyntaxError
		st *StateError
		ce *ConfigError
		ve *ValidationError
	)
	switch {
	case errors.As(err, &se):
		return se.Code
	case errors.As(err, &st):
		return st.Code
	case errors.As(err, &ce):
		return ce.Code
	case errors.As(err, &ve):
		return ve.Code
	}
	return UnknownCode
}
