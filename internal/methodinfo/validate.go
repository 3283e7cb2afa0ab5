package methodinfo

import (
	"fmt"
	"strings"

	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/models"
)

// Validate rejects malformed rule scopes before they reach the comparator
func Validate(mi models.MethodInfo) error {
	bean := mi.EjbName
	sig := FormatSignature(mi.MethodName, mi.MethodParams)

	switch {
	case strings.TrimSpace(mi.MethodName) == "":
		return errors.NewConfigurationError(bean, "method name is empty").WithMethod(mi.String())
	case mi.MethodName == models.Wildcard && mi.MethodParams != nil:
		return errors.NewConfigurationError(bean, "wildcard method cannot declare parameters").
			WithMethod(sig).
			WithSuggestion("drop the parameter list or name the method")
	case !models.ValidIntf(mi.MethodIntf):
		return errors.NewConfigurationError(bean, fmt.Sprintf("unknown method-intf %q", mi.MethodIntf)).
			WithMethod(sig).
			WithSuggestion("use Home, Remote, LocalHome, Local or ServiceEndpoint")
	}

	for i, p := range mi.MethodParams {
		if strings.TrimSpace(p) == "" {
			return errors.NewConfigurationError(bean, fmt.Sprintf("parameter %d has no type", i)).WithMethod(sig)
		}
	}
	return nil
}
