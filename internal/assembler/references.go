package assembler

import (
	"fmt"

	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/methodinfo"
	"github.com/toyz/ejbmeta/internal/models"
)

// inventory pairs each bean with its resolved method inventory
type inventory struct {
	beans   []models.BeanInfo
	methods [][]models.Method
}

// checkReferences rejects descriptor overrides that name a bean or method the
// application does not have. Scopes on "*" or without an ejb-name apply to
// every bean and are not checked.
func checkReferences(jar *models.EjbJarInfo, inv inventory) error {
	multi := errors.NewMultipleErrors()

	check := func(element string, methods []models.MethodInfo) {
		for _, mi := range methods {
			if err := inv.checkScope(element, mi); err != nil {
				multi.Add(err)
			}
		}
	}
	for _, info := range jar.MethodTransactions {
		check("container-transaction", info.Methods)
	}
	for _, info := range jar.MethodConcurrency {
		check("container-concurrency", info.Methods)
	}
	for _, info := range jar.MethodPermissions {
		check("method-permission", info.Methods)
	}
	for _, binding := range jar.InterceptorBindings {
		if err := inv.checkBinding(binding); err != nil {
			multi.Add(err)
		}
	}
	return multi.ErrOrNil()
}

func (inv inventory) checkScope(element string, mi models.MethodInfo) *errors.ConfigurationError {
	if mi.EjbName == "" || mi.EjbName == models.Wildcard {
		return nil
	}

	found := false
	for i, bean := range inv.beans {
		if !methodinfo.MatchesBean(mi, bean) {
			continue
		}
		found = true
		if mi.MethodName == models.Wildcard {
			return nil
		}
		for _, m := range inv.methods[i] {
			if methodinfo.Matches(mi, bean, m) {
				return nil
			}
		}
	}

	if !found {
		return unknownBean(element, mi.EjbName)
	}
	return errors.NewConfigurationError(mi.EjbName, fmt.Sprintf("%s references a method the bean does not have", element)).
		WithMethod(mi.String())
}

func (inv inventory) checkBinding(binding models.InterceptorBindingInfo) *errors.ConfigurationError {
	if binding.EjbName == models.Wildcard {
		return nil
	}

	scope := models.MethodInfo{EjbName: binding.EjbName}
	found := false
	for i, bean := range inv.beans {
		if !methodinfo.MatchesBean(scope, bean) {
			continue
		}
		found = true
		if binding.Method == nil {
			return nil
		}
		for _, m := range inv.methods[i] {
			if methodinfo.MatchesNamed(*binding.Method, m) {
				return nil
			}
		}
	}

	if !found {
		return unknownBean("interceptor-binding", binding.EjbName)
	}
	return errors.NewConfigurationError(binding.EjbName, "interceptor-binding references a method the bean does not have").
		WithMethod(methodinfo.FormatSignature(binding.Method.MethodName, binding.Method.MethodParams))
}

func unknownBean(element, name string) *errors.ConfigurationError {
	return errors.NewConfigurationError(name, fmt.Sprintf("%s references a bean that is not declared", element)).
		WithSuggestion("check the ejb-name against the beans of this module")
}
