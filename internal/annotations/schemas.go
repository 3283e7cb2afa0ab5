package annotations

import (
	"fmt"

	"github.com/toyz/ejbmeta/internal/models"
)

// Built-in annotation schemas

// TransactionAttributeSchema defines @TransactionAttribute
var TransactionAttributeSchema = AnnotationSchema{
	Type:        TransactionAttributeAnnotation,
	Target:      TargetAny,
	Description: "Sets the container-managed transaction attribute of a class or method",
	Parameters: map[string]ParameterSpec{
		"value": {
			Type:         StringType,
			DefaultValue: "REQUIRED",
			Description:  "TransactionAttributeType: REQUIRED, REQUIRES_NEW, MANDATORY, NEVER, NOT_SUPPORTED, SUPPORTS",
			Validator:    ValidateTransAttribute,
		},
	},
	Examples: []string{
		"@TransactionAttribute",
		"@TransactionAttribute(TransactionAttributeType.REQUIRES_NEW)",
		"@javax.ejb.TransactionAttribute(value = NEVER)",
	},
}

// LockSchema defines @Lock
var LockSchema = AnnotationSchema{
	Type:        LockAnnotation,
	Target:      TargetAny,
	Description: "Sets the singleton concurrency lock type",
	Parameters: map[string]ParameterSpec{
		"value": {
			Type:         StringType,
			DefaultValue: "WRITE",
			Description:  "LockType: READ or WRITE",
			Validator:    ValidateLockType,
		},
	},
	Examples: []string{"@Lock(LockType.READ)", "@Lock"},
}

// AccessTimeoutSchema defines @AccessTimeout
var AccessTimeoutSchema = AnnotationSchema{
	Type:        AccessTimeoutAnnotation,
	Target:      TargetAny,
	Description: "Sets how long a concurrent call waits for the bean lock",
	Parameters: map[string]ParameterSpec{
		"value": {
			Type:        IntType,
			Required:    true,
			Description: "Timeout; -1 waits forever, 0 does not wait",
			Validator:   ValidateTimeoutValue,
		},
		"unit": {
			Type:         StringType,
			DefaultValue: "MILLISECONDS",
			Description:  "java.util.concurrent.TimeUnit name",
			Validator:    ValidateTimeUnit,
		},
	},
	Examples: []string{
		"@AccessTimeout(value = 1, unit = TimeUnit.HOURS)",
		"@AccessTimeout(500)",
	},
}

// InterceptorsSchema defines @Interceptors
var InterceptorsSchema = AnnotationSchema{
	Type:        InterceptorsAnnotation,
	Target:      TargetAny,
	Description: "Binds interceptor classes to a class or method",
	Parameters: map[string]ParameterSpec{
		"value": {
			Type:        StringSliceType,
			Required:    true,
			Description: "Interceptor classes in invocation order",
			Validator:   ValidateNonEmptyList,
		},
	},
	Examples: []string{"@Interceptors({Audit.class, Metrics.class})", "@Interceptors(Audit.class)"},
}

// ExcludeClassInterceptorsSchema defines @ExcludeClassInterceptors
var ExcludeClassInterceptorsSchema = AnnotationSchema{
	Type:        ExcludeClassInterceptorsAnnotation,
	Target:      TargetMethod,
	Description: "Excludes class-level interceptors from a method",
	Examples:    []string{"@ExcludeClassInterceptors"},
}

// ExcludeDefaultInterceptorsSchema defines @ExcludeDefaultInterceptors
var ExcludeDefaultInterceptorsSchema = AnnotationSchema{
	Type:        ExcludeDefaultInterceptorsAnnotation,
	Target:      TargetAny,
	Description: "Excludes default (package level) interceptors",
	Examples:    []string{"@ExcludeDefaultInterceptors"},
}

// RolesAllowedSchema defines @RolesAllowed
var RolesAllowedSchema = AnnotationSchema{
	Type:        RolesAllowedAnnotation,
	Target:      TargetAny,
	Description: "Restricts a class or method to the listed security roles",
	Parameters: map[string]ParameterSpec{
		"value": {
			Type:        StringSliceType,
			Required:    true,
			Description: "Role names",
			Validator:   ValidateNonEmptyList,
		},
	},
	Examples: []string{`@RolesAllowed({"admin", "user"})`, `@RolesAllowed("admin")`},
}

// PermitAllSchema defines @PermitAll
var PermitAllSchema = AnnotationSchema{
	Type:        PermitAllAnnotation,
	Target:      TargetAny,
	Description: "Allows every caller",
	Examples:    []string{"@PermitAll"},
}

// DenyAllSchema defines @DenyAll
var DenyAllSchema = AnnotationSchema{
	Type:        DenyAllAnnotation,
	Target:      TargetAny,
	Description: "Denies every caller",
	Examples:    []string{"@DenyAll"},
}

// GetBuiltinSchemas returns all built-in annotation schemas
func GetBuiltinSchemas() []AnnotationSchema {
	return []AnnotationSchema{
		TransactionAttributeSchema,
		LockSchema,
		AccessTimeoutSchema,
		InterceptorsSchema,
		ExcludeClassInterceptorsSchema,
		ExcludeDefaultInterceptorsSchema,
		RolesAllowedSchema,
		PermitAllSchema,
		DenyAllSchema,
	}
}

// RegisterBuiltinSchemas registers all built-in annotation schemas with the given registry
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	for _, schema := range GetBuiltinSchemas() {
		if err := registry.Register(schema.Type, schema); err != nil {
			return fmt.Errorf("failed to register %s schema: %w", schema.Type.String(), err)
		}
	}
	return nil
}

// ValidateTransAttribute accepts any TransactionAttributeType spelling
func ValidateTransAttribute(v interface{}) error {
	_, err := models.ParseTransAttribute(v.(string))
	return err
}

// ValidateLockType accepts READ or WRITE
func ValidateLockType(v interface{}) error {
	_, err := models.ParseLockType(v.(string))
	return err
}

// ValidateTimeUnit accepts a TimeUnit constant name
func ValidateTimeUnit(v interface{}) error {
	_, err := models.ParseTimeUnit(v.(string))
	return err
}

// ValidateTimeoutValue rejects values below -1
func ValidateTimeoutValue(v interface{}) error {
	if v.(int64) < -1 {
		return fmt.Errorf("must be -1 or greater, got %d", v.(int64))
	}
	return nil
}

// ValidateNonEmptyList rejects empty lists and blank entries
func ValidateNonEmptyList(v interface{}) error {
	list := v.([]string)
	if len(list) == 0 {
		return fmt.Errorf("list cannot be empty")
	}
	for _, item := range list {
		if item == "" {
			return fmt.Errorf("list entries cannot be empty")
		}
	}
	return nil
}
