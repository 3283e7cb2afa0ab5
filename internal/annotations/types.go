package annotations

import (
	"fmt"
	"strings"
)

// AnnotationType represents the type of annotation
type AnnotationType int

const (
	UnknownAnnotation AnnotationType = iota
	TransactionAttributeAnnotation
	LockAnnotation
	AccessTimeoutAnnotation
	InterceptorsAnnotation
	ExcludeClassInterceptorsAnnotation
	ExcludeDefaultInterceptorsAnnotation
	RolesAllowedAnnotation
	PermitAllAnnotation
	DenyAllAnnotation
)

var annotationNames = map[AnnotationType]string{
	TransactionAttributeAnnotation:       "TransactionAttribute",
	LockAnnotation:                       "Lock",
	AccessTimeoutAnnotation:              "AccessTimeout",
	InterceptorsAnnotation:               "Interceptors",
	ExcludeClassInterceptorsAnnotation:   "ExcludeClassInterceptors",
	ExcludeDefaultInterceptorsAnnotation: "ExcludeDefaultInterceptors",
	RolesAllowedAnnotation:               "RolesAllowed",
	PermitAllAnnotation:                  "PermitAll",
	DenyAllAnnotation:                    "DenyAll",
}

// String returns the simple annotation name
func (a AnnotationType) String() string {
	if name, ok := annotationNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAnnotationType resolves an annotation name, simple or qualified
// (javax.ejb.Lock, jakarta.ejb.Lock and Lock are the same type).
func ParseAnnotationType(name string) (AnnotationType, error) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	for t, n := range annotationNames {
		if n == name {
			return t, nil
		}
	}
	return UnknownAnnotation, fmt.Errorf("unknown annotation type: %s", name)
}

// SourceLocation is the class or method an annotation was declared on
type SourceLocation struct {
	Class  string
	Method string
}

// String returns "Class" or "Class#method"
func (s SourceLocation) String() string {
	if s.Method == "" {
		return s.Class
	}
	return s.Class + "#" + s.Method
}

// ParsedAnnotation represents a fully parsed annotation with type-safe parameters
type ParsedAnnotation struct {
	Type       AnnotationType         // Annotation type enum
	Name       string                 // Name as written, possibly qualified
	Parameters map[string]interface{} // Typed parameters
	Location   SourceLocation         // Where the annotation was declared
	Raw        string                 // Original annotation text
}

// HasParameter reports whether the parameter was given or defaulted
func (p *ParsedAnnotation) HasParameter(paramName string) bool {
	_, ok := p.Parameters[paramName]
	return ok
}

// GetString returns a string parameter value with optional default
func (p *ParsedAnnotation) GetString(paramName string, defaultValue ...string) string {
	if value, exists := p.Parameters[paramName]; exists {
		if strValue, ok := value.(string); ok {
			return strValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetInt returns an integer parameter value with optional default
func (p *ParsedAnnotation) GetInt(paramName string, defaultValue ...int64) int64 {
	if value, exists := p.Parameters[paramName]; exists {
		if intValue, ok := value.(int64); ok {
			return intValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetStringSlice returns a string slice parameter value with optional default
func (p *ParsedAnnotation) GetStringSlice(paramName string, defaultValue ...[]string) []string {
	if value, exists := p.Parameters[paramName]; exists {
		if sliceValue, ok := value.([]string); ok {
			return sliceValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

// ParameterType represents the type of a parameter
type ParameterType int

const (
	StringType ParameterType = iota
	IntType
	StringSliceType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case IntType:
		return "int"
	case StringSliceType:
		return "[]string"
	default:
		return "unknown"
	}
}

// ParameterSpec defines the specification for an annotation parameter
type ParameterSpec struct {
	Type         ParameterType           // Parameter type
	Required     bool                    // Whether parameter is required
	DefaultValue interface{}             // Default value if not provided
	Description  string                  // Parameter description
	Validator    func(interface{}) error // Custom validator function
}

// AnnotationSchema defines the schema for an annotation type
type AnnotationSchema struct {
	Type        AnnotationType           // Annotation type enum
	Target      Target                   // Where the annotation may appear
	Description string                   // Human-readable description
	Parameters  map[string]ParameterSpec // Parameter specifications
	Examples    []string                 // Usage examples
}

// Target is a bit set of the declaration kinds an annotation may be put on
type Target int

const (
	TargetClass Target = 1 << iota
	TargetMethod

	TargetAny = TargetClass | TargetMethod
)
