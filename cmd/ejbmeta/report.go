package main

import (
	"strings"

	"github.com/toyz/ejbmeta/internal/registry"
	"github.com/toyz/ejbmeta/internal/utils"
	"github.com/toyz/ejbmeta/pkg/inspect"
)

// report prints the resolved metadata of every deployment. A non-empty bean
// restricts the output to that ejb-name.
func report(diag *utils.DiagnosticSystem, reg registry.DeploymentRegistry, bean string) {
	stats := map[string]interface{}{
		"Applications": reg.Len(),
		"Beans":        0,
		"Methods":      0,
		"Resources":    0,
	}

	for _, app := range reg.Apps() {
		d, ok := reg.Get(app)
		if !ok {
			continue
		}
		view := inspect.NewDeploymentView(d)
		diag.Header("%s (%d beans)", d.App, len(view.Beans))
		diag.Verbose("deployment %s", view.ID)

		for _, name := range view.Beans {
			if bean != "" && name != bean {
				continue
			}
			attrs, _ := d.Bean(name)
			beanView := inspect.NewBeanView(attrs, "")
			reportBean(diag, beanView)
			stats["Beans"] = stats["Beans"].(int) + 1
			stats["Methods"] = stats["Methods"].(int) + len(beanView.Methods)
		}

		if len(view.Resources) > 0 && bean == "" {
			diag.Category("resources")
			diag.Indent()
			for i, id := range view.Resources {
				if refs := view.References[id]; len(refs) > 0 {
					diag.List("%d. %s (after %s)", i+1, id, strings.Join(refs, ", "))
					continue
				}
				diag.List("%d. %s", i+1, id)
			}
			diag.Unindent()
			stats["Resources"] = stats["Resources"].(int) + len(view.Resources)
		}
	}

	diag.Summary("Resolution complete", stats)
}

func reportBean(diag *utils.DiagnosticSystem, view inspect.BeanView) {
	diag.Category(view.EjbName + " " + string(view.Type))
	diag.Indent()
	defer diag.Unindent()

	diag.Verbose("class %s", view.ClassName)
	if len(view.Callbacks) > 0 {
		diag.Verbose("lifecycle interceptors %s", strings.Join(view.Callbacks, ", "))
	}
	for _, m := range view.Methods {
		diag.Item(m.Key, methodColumns(m)...)
	}
}

func methodColumns(m inspect.MethodView) []string {
	columns := []string{"tx=" + m.Transaction}
	if m.Lock != "" {
		columns = append(columns, "lock="+m.Lock)
	}
	if m.AccessTimeout != "" {
		columns = append(columns, "timeout="+m.AccessTimeout)
	}
	if m.Permission != nil {
		columns = append(columns, "perm="+m.Permission.String())
	}
	if len(m.Interceptors) > 0 {
		columns = append(columns, "interceptors="+strings.Join(m.Interceptors, ","))
	}
	return columns
}
