package errors

import (
	"fmt"
	"strings"
)

// MetadataError is implemented by every error the deployment pipeline
// returns. Callers can recover the failing bean, resource or file from
// Context and show Suggestions to the user.
type MetadataError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies a MetadataError
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	SyntaxErrorCode
	ValidationErrorCode
	RegistrationErrorCode
	ConfigurationErrorCode
	DependencyErrorCode
	ResolutionErrorCode
	FileSystemErrorCode
)

var codeNames = map[ErrorCode]string{
	SyntaxErrorCode:        "SyntaxError",
	ValidationErrorCode:    "ValidationError",
	RegistrationErrorCode:  "RegistrationError",
	ConfigurationErrorCode: "ConfigurationError",
	DependencyErrorCode:    "DependencyError",
	ResolutionErrorCode:    "ResolutionError",
	FileSystemErrorCode:    "FileSystemError",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UnknownError"
}

// SourceLocation names the descriptor, class or annotation an error came
// from. Line and Column are 1-based; zero means unknown.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// String renders "file", "file:line" or "file:line:col"
func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
}

// IsEmpty reports whether no file is known
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError carries the fields shared by all domain errors. The With*
// methods modify the receiver and return it for chaining.
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

// New creates an error of the given kind
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message, Hints: []string{}}
}

// Newf is New with a format string
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an error of the given kind caused by cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return New(code, message).WithCause(cause)
}

// Error renders "location: message: cause", omitting unknown parts
func (e *BaseError) Error() string {
	var b strings.Builder
	if !e.Loc.IsEmpty() {
		b.WriteString(e.Loc.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *BaseError) ErrorCode() ErrorCode     { return e.Code }
func (e *BaseError) Location() SourceLocation { return e.Loc }
func (e *BaseError) Suggestions() []string    { return e.Hints }
func (e *BaseError) Unwrap() error            { return e.Cause }

// Context returns the key/value details attached with WithContext. It never
// returns nil.
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return map[string]interface{}{}
	}
	return e.ContextData
}

// Is matches the code-only sentinels below, so errors.Is(err, ErrConfiguration)
// holds for any configuration error.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	return ok && t.Message == "" && t.Code == e.Code
}

func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = map[string]interface{}{}
	}
	e.ContextData[key] = value
	return e
}

func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// Sentinels for errors.Is
var (
	ErrConfiguration = &BaseError{Code: ConfigurationErrorCode}
	ErrDependency    = &BaseError{Code: DependencyErrorCode}
	ErrSyntax        = &BaseError{Code: SyntaxErrorCode}
	ErrValidation    = &BaseError{Code: ValidationErrorCode}
	ErrRegistration  = &BaseError{Code: RegistrationErrorCode}
)

// MultipleErrors collects the independent problems found in one pass so
// they can be reported together
type MultipleErrors struct {
	Errors []MetadataError
}

// NewMultipleErrors creates an empty collection
func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{Errors: []MetadataError{}}
}

func (m *MultipleErrors) Add(err MetadataError) {
	m.Errors = append(m.Errors, err)
}

func (m *MultipleErrors) Count() int {
	return len(m.Errors)
}

// HasCode reports whether any collected error has the given code
func (m *MultipleErrors) HasCode(code ErrorCode) bool {
	for _, err := range m.Errors {
		if err.ErrorCode() == code {
			return true
		}
	}
	return false
}

// ErrorCode is the code of the first collected error
func (m *MultipleErrors) ErrorCode() ErrorCode {
	if len(m.Errors) == 0 {
		return UnknownErrorCode
	}
	return m.Errors[0].ErrorCode()
}

func (m *MultipleErrors) Error() string {
	switch len(m.Errors) {
	case 0:
		return "no errors"
	case 1:
		return m.Errors[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "multiple errors (%d total):", len(m.Errors))
	for i, err := range m.Errors {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes every collected error to errors.Is and errors.As
func (m *MultipleErrors) Unwrap() []error {
	errs := make([]error, len(m.Errors))
	for i, err := range m.Errors {
		errs[i] = err
	}
	return errs
}

// ErrOrNil returns nil for an empty collection, the single error when only one
// was collected, and the collection otherwise.
func (m *MultipleErrors) ErrOrNil() error {
	switch len(m.Errors) {
	case 0:
		return nil
	case 1:
		return m.Errors[0]
	default:
		return m
	}
}
