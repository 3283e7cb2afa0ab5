package errors

import (
	"fmt"
	"strings"
)

// ConfigurationError reports malformed deployment input: a bad signature, an
// undeclared interceptor, a missing class. It names the bean and method involved.
type ConfigurationError struct {
	*BaseError
	Bean   string
	Method string
}

// NewConfigurationError creates a configuration error for a bean
func NewConfigurationError(bean, message string) *ConfigurationError {
	full := message
	if bean != "" {
		full = fmt.Sprintf("bean '%s': %s", bean, message)
	}
	return &ConfigurationError{
		BaseError: New(ConfigurationErrorCode, full).WithContext("bean", bean),
		Bean:      bean,
	}
}

// WithMethod records the offending method signature
func (e *ConfigurationError) WithMethod(method string) *ConfigurationError {
	e.Method = method
	e.BaseError.Message = fmt.Sprintf("%s (method %s)", e.BaseError.Message, method)
	e.BaseError.WithContext("method", method)
	return e
}

// WithSuggestion adds a helpful suggestion
func (e *ConfigurationError) WithSuggestion(suggestion string) *ConfigurationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// WithLocation adds location information to the error
func (e *ConfigurationError) WithLocation(loc SourceLocation) *ConfigurationError {
	e.BaseError.WithLocation(loc)
	return e
}

// SyntaxError reports annotation or method-signature text that does not parse
type SyntaxError struct {
	*BaseError
	Input    string // the text that failed to parse
	Position int    // offset in the input where parsing stopped
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message, input string, position int) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message).WithContext("input", input),
		Input:     input,
		Position:  position,
	}
}

// ValidationError represents a validation error with detailed context
type ValidationError struct {
	*BaseError
	Field    string // field that failed validation
	Expected string // what was expected
	Actual   string // what was provided
}

// NewValidationError creates a new validation error
func NewValidationError(field, expected, actual string) *ValidationError {
	message := fmt.Sprintf("validation failed for field '%s': expected %s, got %s", field, expected, actual)
	return &ValidationError{
		BaseError: New(ValidationErrorCode, message),
		Field:     field,
		Expected:  expected,
		Actual:    actual,
	}
}

// DependencyError reports a resource reference that cannot be ordered
type DependencyError struct {
	*BaseError
	Cycle []string
}

// NewCycleError creates a dependency error naming the resources in a cycle
func NewCycleError(cycle []string) *DependencyError {
	message := fmt.Sprintf("circular resource reference: %s", strings.Join(cycle, " -> "))
	return &DependencyError{
		BaseError: New(DependencyErrorCode, message).
			WithSuggestion("remove one of the references or split the resource"),
		Cycle: cycle,
	}
}

// NewDependencyError creates a dependency error for a named resource
func NewDependencyError(name, message string) *DependencyError {
	return &DependencyError{
		BaseError: Newf(DependencyErrorCode, "resource '%s': %s", name, message).
			WithContext("resource", name),
	}
}

// RegistrationError reports a failure to publish or look up a deployment
type RegistrationError struct {
	*BaseError
	Component string
	Name      string
}

// NewRegistrationError creates a registration error
func NewRegistrationError(component, name, reason string) *RegistrationError {
	return &RegistrationError{
		BaseError: Newf(RegistrationErrorCode, "failed to register %s '%s': %s", component, name, reason).
			WithContext("component", component).
			WithContext("name", name),
		Component: component,
		Name:      name,
	}
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-loading errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}
