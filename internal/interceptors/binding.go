// Package interceptors computes the ordered interceptor chain of every bean
// method from default, class and method level bindings.
package interceptors

import (
	"slices"

	"github.com/toyz/ejbmeta/internal/models"
)

// Level ranks a binding by scope. Annotation bindings rank just below the
// descriptor binding of the same scope.
type Level int

const (
	PackageLevel Level = iota
	AnnotationClassLevel
	ClassLevel
	AnnotationMethodLevel
	OverloadedMethodLevel
	ExactMethodLevel
)

var levelNames = [...]string{"package", "annotation-class", "class", "annotation-method", "overloaded-method", "exact-method"}

// String returns the level name
func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// IsClass reports whether the level applies to a whole bean
func (l Level) IsClass() bool {
	return l == ClassLevel || l == AnnotationClassLevel
}

// Type ranks bindings of the same level by how they affect other bindings
type Type int

const (
	AdditionOrLowerExclusion Type = iota
	SameLevelExclusion
	SameAndLowerExclusion
	ExplicitOrdering
)

// String returns the type name
func (t Type) String() string {
	switch t {
	case AdditionOrLowerExclusion:
		return "addition-or-lower-exclusion"
	case SameLevelExclusion:
		return "same-level-exclusion"
	case SameAndLowerExclusion:
		return "same-and-lower-exclusion"
	case ExplicitOrdering:
		return "explicit-ordering"
	default:
		return "unknown"
	}
}

// LevelOf returns the scope level of a binding
func LevelOf(b models.InterceptorBindingInfo) Level {
	switch {
	case b.EjbName == models.Wildcard:
		return PackageLevel
	case b.Method == nil && b.ClassName == "":
		return ClassLevel
	case b.Method == nil:
		return AnnotationClassLevel
	case b.Method.MethodParams == nil:
		return OverloadedMethodLevel
	case b.ClassName == "":
		return ExactMethodLevel
	default:
		return AnnotationMethodLevel
	}
}

// TypeOf returns the binding type at the given level
func TypeOf(level Level, b models.InterceptorBindingInfo) Type {
	switch {
	case len(b.InterceptorOrder) > 0:
		return ExplicitOrdering
	case level.IsClass() && b.ExcludeClassInterceptors && b.ExcludeDefaultInterceptors:
		return SameAndLowerExclusion
	case level.IsClass() && b.ExcludeClassInterceptors:
		return SameLevelExclusion
	default:
		return AdditionOrLowerExclusion
	}
}

// Compare orders bindings by level, then by type
func Compare(a, b models.InterceptorBindingInfo) int {
	la, lb := LevelOf(a), LevelOf(b)
	if la != lb {
		return int(la) - int(lb)
	}
	return int(TypeOf(la, a)) - int(TypeOf(lb, b))
}

// sortDescending orders bindings most specific first. Ties end up in
// reverse declaration order; the final chain is reversed back.
func sortDescending(bindings []models.InterceptorBindingInfo) []models.InterceptorBindingInfo {
	sorted := slices.Clone(bindings)
	slices.SortStableFunc(sorted, Compare)
	slices.Reverse(sorted)
	return sorted
}

// Classes returns the interceptor classes a binding contributes
func Classes(b models.InterceptorBindingInfo) []string {
	if len(b.InterceptorOrder) > 0 {
		return b.InterceptorOrder
	}
	return b.Interceptors
}
