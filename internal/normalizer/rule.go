// Package normalizer turns annotation and descriptor metadata into sorted,
// one-scope-per-entry rule lists.
package normalizer

import (
	"fmt"

	"github.com/toyz/ejbmeta/internal/methodinfo"
	"github.com/toyz/ejbmeta/internal/models"
)

// Source records where a rule was declared
type Source int

const (
	FromAnnotation Source = iota
	FromDescriptor
)

// String returns "annotation" or "descriptor"
func (s Source) String() string {
	if s == FromAnnotation {
		return "annotation"
	}
	return "descriptor"
}

// Rule is one normalized declarative rule: a single method scope and the
// value it assigns.
type Rule[T any] struct {
	Method      models.MethodInfo
	Value       T
	Source      Source
	Description string
	Seq         int // declaration order before sorting
}

// Scope returns the method scope of the rule
func (r Rule[T]) Scope() models.MethodInfo {
	return r.Method
}

// String returns the scope followed by the value
func (r Rule[T]) String() string {
	return fmt.Sprintf("%s %v", r.Method, r.Value)
}

// Sort orders rules least specific first, keeping declaration order for ties
func Sort[T any](rules []Rule[T]) {
	methodinfo.SortStable(rules, Rule[T].Scope)
}

// Rules holds every normalized category of one application
type Rules struct {
	Transactions   []Rule[models.TransAttribute]
	Locks          []Rule[models.LockType]
	AccessTimeouts []Rule[models.Timeout]
	Permissions    []Rule[models.Permission]

	// InterceptorBindings keeps annotation bindings ahead of descriptor
	// bindings; the interceptor builder does its own ranking.
	InterceptorBindings []models.InterceptorBindingInfo
	// Interceptors is every declared interceptor class, descriptor and annotation
	Interceptors map[string]bool
}

// Count returns the total number of method-scoped rules
func (r *Rules) Count() int {
	return len(r.Transactions) + len(r.Locks) + len(r.AccessTimeouts) + len(r.Permissions)
}

// splitter appends one rule per method scope, validating every scope
type splitter struct {
	seq int
}

func appendRules[T any](s *splitter, out []Rule[T], methods []models.MethodInfo, value T, src Source, desc string) ([]Rule[T], error) {
	for _, mi := range methods {
		if err := methodinfo.Validate(mi); err != nil {
			return nil, err
		}
		out = append(out, Rule[T]{
			Method:      mi,
			Value:       value,
			Source:      src,
			Description: desc,
			Seq:         s.seq,
		})
		s.seq++
	}
	return out, nil
}
