package annotations

import (
	"fmt"

	"github.com/toyz/ejbmeta/internal/utils"
)

// AnnotationRegistry maps each supported annotation to the schema its
// arguments are checked against
type AnnotationRegistry interface {
	Register(annotationType AnnotationType, schema AnnotationSchema) error
	GetSchema(annotationType AnnotationType) (AnnotationSchema, error)
	// ListTypes returns the registered types in declaration order
	ListTypes() []AnnotationType
	IsRegistered(annotationType AnnotationType) bool
}

type schemaRegistry struct {
	schemas *utils.BaseRegistry[AnnotationType, AnnotationSchema]
}

// NewRegistry creates an empty registry
func NewRegistry() AnnotationRegistry {
	schemas := utils.NewBaseRegistry[AnnotationType, AnnotationSchema]("annotation", "annotation type")
	schemas.SetValidator(checkSchema)
	return &schemaRegistry{schemas: schemas}
}

// NewBuiltinRegistry creates a registry holding the built-in EJB annotations.
// Every call returns an independent registry.
func NewBuiltinRegistry() AnnotationRegistry {
	r := NewRegistry()
	if err := RegisterBuiltinSchemas(r); err != nil {
		panic(fmt.Sprintf("annotations: built-in schemas: %v", err))
	}
	return r
}

func (r *schemaRegistry) Register(annotationType AnnotationType, schema AnnotationSchema) error {
	return r.schemas.Register(annotationType, schema)
}

func (r *schemaRegistry) GetSchema(annotationType AnnotationType) (AnnotationSchema, error) {
	schema, ok := r.schemas.Get(annotationType)
	if !ok {
		return AnnotationSchema{}, fmt.Errorf("@%s has no registered schema", annotationType)
	}
	return schema, nil
}

func (r *schemaRegistry) ListTypes() []AnnotationType {
	return r.schemas.Keys()
}

func (r *schemaRegistry) IsRegistered(annotationType AnnotationType) bool {
	return r.schemas.Has(annotationType)
}

// checkSchema rejects a schema filed under the wrong type or one whose
// parameter defaults do not match their declared kind
func checkSchema(as AnnotationType, schema AnnotationSchema, _ map[AnnotationType]AnnotationSchema) error {
	if schema.Type != as {
		return fmt.Errorf("schema for @%s registered as @%s", schema.Type, as)
	}
	for name, spec := range schema.Parameters {
		if name == "" {
			return fmt.Errorf("@%s declares a parameter without a name", as)
		}
		if !defaultFits(spec) {
			return fmt.Errorf("@%s(%s): default %v (%T) is not a %s", as, name, spec.DefaultValue, spec.DefaultValue, spec.Type)
		}
	}
	return nil
}

func defaultFits(spec ParameterSpec) bool {
	if spec.DefaultValue == nil {
		return spec.Type >= StringType && spec.Type <= StringSliceType
	}
	var ok bool
	switch spec.Type {
	case StringType:
		_, ok = spec.DefaultValue.(string)
	case IntType:
		_, ok = spec.DefaultValue.(int64)
	case StringSliceType:
		_, ok = spec.DefaultValue.([]string)
	}
	return ok
}
