package methodinfo

import (
	"strings"

	"github.com/toyz/ejbmeta/internal/models"
)

// MatchesBean reports whether a rule scope applies to the bean. The bean
// component matches the ejb-name, the deployment id, or the simple name of
// the bean class. An empty name or "*" matches every bean.
func MatchesBean(mi models.MethodInfo, bean models.BeanInfo) bool {
	if mi.EjbDeploymentID != "" && mi.EjbDeploymentID != bean.DeploymentID {
		return false
	}
	switch mi.EjbName {
	case "", models.Wildcard, bean.EjbName:
		return true
	}
	if bean.DeploymentID != "" && mi.EjbName == bean.DeploymentID {
		return true
	}
	return mi.EjbName == bean.SimpleClassName()
}

// Matches reports whether a rule scope applies to one inventory method of
// the bean. Every component is checked on its own: bean, method name,
// parameter list, declaring class, view.
func Matches(mi models.MethodInfo, bean models.BeanInfo, m models.Method) bool {
	if !MatchesBean(mi, bean) {
		return false
	}
	if mi.MethodName != models.Wildcard && mi.MethodName != m.Name {
		return false
	}
	if mi.MethodParams != nil && !ParamsEqual(mi.MethodParams, m.Params) {
		return false
	}
	if scoped(mi.ClassName) && mi.ClassName != m.DeclaringClass {
		return false
	}
	if scoped(mi.MethodIntf) && !m.HasView(mi.MethodIntf) {
		return false
	}
	return true
}

// MatchesNamed reports whether a bean-less method reference (interceptor
// bindings) names the method. Nil params match every overload.
func MatchesNamed(nm models.NamedMethodInfo, m models.Method) bool {
	if nm.MethodName != m.Name {
		return false
	}
	return nm.MethodParams == nil || ParamsEqual(nm.MethodParams, m.Params)
}

// ParamsEqual compares parameter type lists by arity and position.
// Nested class separators ($) and varargs (...) compare equal to their
// source forms (. and []).
func ParamsEqual(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] && CanonicalType(want[i]) != CanonicalType(got[i]) {
			return false
		}
	}
	return true
}

// CanonicalType normalises a Java type name for comparison
func CanonicalType(t string) string {
	t = strings.TrimSpace(t)
	t = strings.ReplaceAll(t, "$", ".")
	if strings.HasSuffix(t, "...") {
		t = strings.TrimSuffix(t, "...") + "[]"
	}
	return t
}
