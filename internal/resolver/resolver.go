// Package resolver applies normalized rules to a bean's method inventory,
// producing one immutable attribute map per category.
package resolver

import (
	"github.com/toyz/ejbmeta/internal/methodinfo"
	"github.com/toyz/ejbmeta/internal/models"
	"github.com/toyz/ejbmeta/internal/normalizer"
)

// Attributes maps every inventory method to its resolved value. A method no
// rule matched is present with a nil value. Attributes is read-only.
type Attributes[T any] struct {
	values  map[models.MethodKey]*T
	origins map[models.MethodKey]normalizer.Rule[T]
	keys    []models.MethodKey
}

// Get returns the resolved value of a method and whether the method is in
// the inventory. The value is nil when no rule matched.
func (a *Attributes[T]) Get(key models.MethodKey) (*T, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Origin returns the rule that decided the method's value
func (a *Attributes[T]) Origin(key models.MethodKey) (normalizer.Rule[T], bool) {
	r, ok := a.origins[key]
	return r, ok
}

// Keys returns the inventory keys in inventory order
func (a *Attributes[T]) Keys() []models.MethodKey {
	return append([]models.MethodKey(nil), a.keys...)
}

// Len returns the number of methods in the map
func (a *Attributes[T]) Len() int {
	return len(a.keys)
}

// Resolved returns the number of methods with a value
func (a *Attributes[T]) Resolved() int {
	return len(a.origins)
}

// Each calls fn for every method in inventory order
func (a *Attributes[T]) Each(fn func(key models.MethodKey, value *T)) {
	for _, k := range a.keys {
		fn(k, a.values[k])
	}
}

// Resolve walks rules, sorted least specific first, over each method and
// keeps the last match.
func Resolve[T any](rules []normalizer.Rule[T], bean models.BeanInfo, methods []models.Method) *Attributes[T] {
	attrs := &Attributes[T]{
		values:  make(map[models.MethodKey]*T, len(methods)),
		origins: make(map[models.MethodKey]normalizer.Rule[T]),
		keys:    make([]models.MethodKey, 0, len(methods)),
	}

	for _, m := range methods {
		key := m.Key()
		if _, dup := attrs.values[key]; dup {
			continue
		}
		attrs.keys = append(attrs.keys, key)
		attrs.values[key] = nil

		for _, rule := range rules {
			if !methodinfo.Matches(rule.Method, bean, m) {
				continue
			}
			v := rule.Value
			attrs.values[key] = &v
			attrs.origins[key] = rule
		}
	}
	return attrs
}
