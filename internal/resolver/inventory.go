package resolver

import (
	"fmt"
	"strings"

	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/methodinfo"
	"github.com/toyz/ejbmeta/internal/models"
)

// Inventory lists the business methods of a bean. It walks the bean class
// and its superclasses, most derived first; an overriding declaration hides
// the inherited one and is attributed to the overriding class. View methods
// are tagged with their view, and view methods the bean class does not
// declare are attributed to the view interface.
func Inventory(jar *models.EjbJarInfo, bean models.BeanInfo) ([]models.Method, error) {
	chain, err := jar.Hierarchy(bean.ClassName)
	if err != nil {
		cfg := errors.NewConfigurationError(bean.EjbName, "cannot build method inventory")
		cfg.WithCause(err)
		return nil, cfg
	}

	var methods []models.Method
	index := make(map[string]int)

	for _, class := range chain {
		for _, decl := range class.Methods {
			sig := signatureKey(decl.Name, decl.Params)
			if _, hidden := index[sig]; hidden {
				continue
			}
			params := decl.Params
			if params == nil {
				params = []string{}
			}
			index[sig] = len(methods)
			methods = append(methods, models.Method{
				DeclaringClass: class.Name,
				Name:           decl.Name,
				Params:         params,
			})
		}
	}

	for _, view := range bean.Views {
		if !models.ValidIntf(view.Intf) || view.Intf == "" || view.Intf == models.Wildcard {
			return nil, errors.NewConfigurationError(bean.EjbName, fmt.Sprintf("view %s has unknown kind %q", view.Interface, view.Intf))
		}
		for _, vm := range view.Methods {
			sig := signatureKey(vm.Name, vm.Params)
			i, ok := index[sig]
			if !ok {
				params := vm.Params
				if params == nil {
					params = []string{}
				}
				i = len(methods)
				index[sig] = i
				methods = append(methods, models.Method{
					DeclaringClass: view.Interface,
					Name:           vm.Name,
					Params:         params,
				})
			}
			if !methods[i].HasView(view.Intf) {
				methods[i].Views = append(methods[i].Views, view.Intf)
			}
		}
	}
	return methods, nil
}

func signatureKey(name string, params []string) string {
	canonical := make([]string, len(params))
	for i, p := range params {
		canonical[i] = methodinfo.CanonicalType(p)
	}
	return name + "(" + strings.Join(canonical, ",") + ")"
}
