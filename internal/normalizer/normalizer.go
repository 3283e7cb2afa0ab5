package normalizer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/methodinfo"
	"github.com/toyz/ejbmeta/internal/models"
)

// Metadata is a set of category records from one source
type Metadata struct {
	Transactions        []models.MethodTransactionInfo
	Concurrency         []models.MethodConcurrencyInfo
	Permissions         []models.MethodPermissionInfo
	InterceptorBindings []models.InterceptorBindingInfo
	Interceptors        []models.InterceptorInfo
}

type sourced struct {
	md  Metadata
	src Source
}

// Normalizer merges annotation and descriptor metadata into sorted rules
type Normalizer struct {
	scanner *Scanner
	log     *logrus.Entry
}

// New creates a normalizer. A nil scanner skips annotation processing.
func New(scanner *Scanner, log *logrus.Entry) *Normalizer {
	return &Normalizer{scanner: scanner, log: log}
}

// Normalize builds the rules of one application. Annotation rules are
// placed before descriptor rules so that at equal rank the descriptor wins.
func (n *Normalizer) Normalize(jar *models.EjbJarInfo) (*Rules, error) {
	var sources []sourced

	if n.scanner != nil {
		for _, bean := range jar.Beans {
			md, err := n.scanner.Scan(jar, bean)
			if err != nil {
				return nil, err
			}
			sources = append(sources, sourced{md, FromAnnotation})
		}
	}
	sources = append(sources, sourced{descriptorMetadata(jar), FromDescriptor})

	rules := &Rules{Interceptors: make(map[string]bool)}
	s := &splitter{}
	for _, source := range sources {
		if err := rules.add(s, source.md, source.src); err != nil {
			return nil, err
		}
	}

	Sort(rules.Transactions)
	Sort(rules.Locks)
	Sort(rules.AccessTimeouts)
	Sort(rules.Permissions)

	n.log.WithFields(logrus.Fields{
		"transactions":    len(rules.Transactions),
		"locks":           len(rules.Locks),
		"access_timeouts": len(rules.AccessTimeouts),
		"permissions":     len(rules.Permissions),
		"bindings":        len(rules.InterceptorBindings),
	}).Debug("normalized method rules")

	return rules, nil
}

func descriptorMetadata(jar *models.EjbJarInfo) Metadata {
	return Metadata{
		Transactions:        jar.MethodTransactions,
		Concurrency:         jar.MethodConcurrency,
		Permissions:         jar.MethodPermissions,
		InterceptorBindings: jar.InterceptorBindings,
		Interceptors:        jar.Interceptors,
	}
}

func (r *Rules) add(s *splitter, md Metadata, src Source) error {
	var err error

	for _, info := range md.Transactions {
		ta, perr := models.ParseTransAttribute(string(info.TransAttribute))
		if perr != nil {
			return errors.NewConfigurationError(firstBean(info.Methods), perr.Error())
		}
		if r.Transactions, err = appendRules(s, r.Transactions, info.Methods, ta, src, info.Description); err != nil {
			return err
		}
	}

	for _, info := range md.Concurrency {
		if info.Lock == nil && info.AccessTimeout == nil {
			return errors.NewConfigurationError(firstBean(info.Methods), "container-concurrency sets neither lock nor access-timeout")
		}
		if info.Lock != nil {
			if r.Locks, err = appendRules(s, r.Locks, info.Methods, *info.Lock, src, info.Description); err != nil {
				return err
			}
		}
		if info.AccessTimeout != nil {
			if verr := info.AccessTimeout.Validate(); verr != nil {
				return errors.NewConfigurationError(firstBean(info.Methods), verr.Error())
			}
			if r.AccessTimeouts, err = appendRules(s, r.AccessTimeouts, info.Methods, *info.AccessTimeout, src, info.Description); err != nil {
				return err
			}
		}
	}

	for _, info := range md.Permissions {
		if info.Unchecked && info.Excluded {
			return errors.NewConfigurationError(firstBean(info.Methods), "method permission cannot be both unchecked and excluded")
		}
		if !info.Unchecked && !info.Excluded && len(info.RoleNames) == 0 {
			return errors.NewConfigurationError(firstBean(info.Methods), "method permission names no roles")
		}
		if r.Permissions, err = appendRules(s, r.Permissions, info.Methods, info.Permission(), src, info.Description); err != nil {
			return err
		}
	}

	for _, binding := range md.InterceptorBindings {
		if binding.EjbName == "" {
			return errors.NewConfigurationError("", "interceptor binding has no ejb-name").
				WithSuggestion(fmt.Sprintf("use %q for default interceptors", models.Wildcard))
		}
		if err := checkBindingMethod(binding); err != nil {
			return err
		}
		r.InterceptorBindings = append(r.InterceptorBindings, binding)
	}
	for _, ic := range md.Interceptors {
		r.Interceptors[ic.ClassName] = true
	}
	return nil
}

// checkBindingMethod applies the rule scope checks to a method-level binding.
// Bindings match method names literally, so "*" is refused outright.
func checkBindingMethod(binding models.InterceptorBindingInfo) error {
	if binding.Method == nil {
		return nil
	}
	mi := models.MethodInfo{
		EjbName:      binding.EjbName,
		MethodName:   binding.Method.MethodName,
		MethodParams: binding.Method.MethodParams,
	}
	if err := methodinfo.Validate(mi); err != nil {
		return err
	}
	if mi.MethodName == models.Wildcard {
		return errors.NewConfigurationError(binding.EjbName, "interceptor binding cannot target method *").
			WithSuggestion("drop the method to bind at class level")
	}
	return nil
}

func firstBean(methods []models.MethodInfo) string {
	if len(methods) == 0 {
		return ""
	}
	return methods[0].EjbName
}
