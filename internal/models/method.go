package models

import (
	"fmt"
	"strings"
)

// Wildcard matches any bean, class, interface or method name
const Wildcard = "*"

// MethodInfo scopes a declarative rule to a set of bean methods.
// Each component can be a wildcard. MethodParams distinguishes nil (any
// overload) from an empty slice (the zero-argument overload).
type MethodInfo struct {
	Description     string   `json:"description,omitempty"`
	EjbName         string   `json:"ejbName,omitempty"`         // "*" = every bean, "" = any bean
	EjbDeploymentID string   `json:"ejbDeploymentId,omitempty"` // alternative bean identity
	MethodIntf      string   `json:"methodIntf,omitempty"`      // view restriction, "" or "*" = any view
	ClassName       string   `json:"className,omitempty"`       // declaring class restriction
	MethodName      string   `json:"methodName"`                // "*" = every method
	MethodParams    []string `json:"methodParams"`              // nil = every overload
}

// HasParams reports whether the rule names an exact parameter list
func (m MethodInfo) HasParams() bool {
	return m.MethodParams != nil
}

// String renders the rule scope as "ejb : intf : class : method(params)"
func (m MethodInfo) String() string {
	orStar := func(s string) string {
		if s == "" {
			return Wildcard
		}
		return s
	}
	params := Wildcard
	if m.MethodParams != nil {
		params = strings.Join(m.MethodParams, ", ")
	}
	return fmt.Sprintf("%s : %s : %s : %s(%s)",
		orStar(m.EjbName), orStar(m.MethodIntf), orStar(m.ClassName), m.MethodName, params)
}

// NamedMethodInfo names a method without bean scoping, as used by interceptor bindings
type NamedMethodInfo struct {
	MethodName   string   `json:"methodName"`
	MethodParams []string `json:"methodParams"`
}

// Signature is a method name plus its ordered parameter type names
type Signature struct {
	Name   string   `json:"name"`
	Params []string `json:"params"`
}

// String returns "name(p1,p2)"
func (s Signature) String() string {
	return s.Name + "(" + strings.Join(s.Params, ",") + ")"
}

// MethodKey is the structural identity of a bean method. Two inventory
// entries with the same declaring class, name and parameter list are the same
// method. It is comparable and used as a map key.
type MethodKey struct {
	Class  string `json:"class"`
	Name   string `json:"name"`
	Params string `json:"params"`
}

// String returns "Class.name(p1,p2)"
func (k MethodKey) String() string {
	return k.Class + "." + k.Name + "(" + k.Params + ")"
}

// Method is one entry of a bean's method inventory
type Method struct {
	DeclaringClass string   `json:"declaringClass"`
	Name           string   `json:"name"`
	Params         []string `json:"params"`
	Views          []string `json:"views,omitempty"` // interface views exposing the method
}

// Key returns the structural key of the method
func (m Method) Key() MethodKey {
	return MethodKey{Class: m.DeclaringClass, Name: m.Name, Params: strings.Join(m.Params, ",")}
}

// Signature returns the name and parameter types without the declaring class
func (m Method) Signature() Signature {
	return Signature{Name: m.Name, Params: m.Params}
}

// HasView reports whether the method is exposed through the named view
func (m Method) HasView(intf string) bool {
	for _, v := range m.Views {
		if v == intf {
			return true
		}
	}
	return false
}
