// Package methodinfo ranks and matches the method scopes of declarative rules.
//
// A rule scope (models.MethodInfo) has a specificity Level and a View. Rules
// are applied least specific first, so for every method the most specific
// matching rule is the last one written.
package methodinfo

import (
	"slices"

	"github.com/toyz/ejbmeta/internal/models"
)

// Level is the primary specificity rank of a rule scope
type Level int

const (
	PackageLevel Level = iota // every bean of the application
	BeanLevel                 // every method of a bean
	OverloadedMethodLevel     // every overload of a method name
	ExactMethodLevel          // one overload
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case PackageLevel:
		return "package"
	case BeanLevel:
		return "bean"
	case OverloadedMethodLevel:
		return "overloaded-method"
	case ExactMethodLevel:
		return "exact-method"
	default:
		return "unknown"
	}
}

// View is the secondary rank. A class-scoped rule ranks below an unscoped
// one, and an interface-scoped rule ranks above both.
type View int

const (
	ClassView View = iota
	AnyView
	InterfaceView
)

// String returns the view name
func (v View) String() string {
	switch v {
	case ClassView:
		return "class"
	case AnyView:
		return "any"
	case InterfaceView:
		return "interface"
	default:
		return "unknown"
	}
}

// LevelOf returns the specificity level of a rule scope
func LevelOf(mi models.MethodInfo) Level {
	switch {
	case mi.EjbName == models.Wildcard:
		return PackageLevel
	case mi.MethodName == models.Wildcard:
		return BeanLevel
	case mi.MethodParams == nil:
		return OverloadedMethodLevel
	default:
		return ExactMethodLevel
	}
}

// ViewOf returns the view rank of a rule scope
func ViewOf(mi models.MethodInfo) View {
	if scoped(mi.ClassName) {
		return ClassView
	}
	if scoped(mi.MethodIntf) {
		return InterfaceView
	}
	return AnyView
}

// Compare orders rule scopes from least to most specific: by level, then by view.
func Compare(a, b models.MethodInfo) int {
	if la, lb := LevelOf(a), LevelOf(b); la != lb {
		return int(la) - int(lb)
	}
	return int(ViewOf(a)) - int(ViewOf(b))
}

// SortStable sorts items least specific first. Items of equal rank keep
// their relative order, which makes the later declaration win.
func SortStable[T any](items []T, scope func(T) models.MethodInfo) {
	slices.SortStableFunc(items, func(a, b T) int {
		return Compare(scope(a), scope(b))
	})
}

func scoped(s string) bool {
	return s != "" && s != models.Wildcard
}
