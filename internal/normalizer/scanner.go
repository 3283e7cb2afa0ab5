package normalizer

import (
	"fmt"

	"github.com/toyz/ejbmeta/internal/annotations"
	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/models"
)

// Scanner derives category records from the annotations of a bean's classes
type Scanner struct {
	parser *annotations.Parser
}

// NewScanner creates a scanner using parser for annotation text
func NewScanner(parser *annotations.Parser) *Scanner {
	return &Scanner{parser: parser}
}

// Scan walks the bean class hierarchy from the root superclass down to the
// bean class. Class annotations scope to every method declared by that class;
// method annotations scope to the exact overload on its declaring class.
func (s *Scanner) Scan(jar *models.EjbJarInfo, bean models.BeanInfo) (Metadata, error) {
	chain, err := jar.Hierarchy(bean.ClassName)
	if err != nil {
		cfg := errors.NewConfigurationError(bean.EjbName, "cannot scan bean class hierarchy")
		cfg.WithCause(err)
		return Metadata{}, cfg
	}

	var md Metadata
	for i := len(chain) - 1; i >= 0; i-- {
		class := chain[i]

		parsed, err := s.parser.ParseAll(class.Annotations, annotations.SourceLocation{Class: class.Name})
		if err != nil {
			return Metadata{}, err
		}
		scope := models.MethodInfo{
			EjbName:    bean.EjbName,
			ClassName:  class.Name,
			MethodName: models.Wildcard,
		}
		if err := md.collect(parsed, bean, class.Name, scope, nil); err != nil {
			return Metadata{}, err
		}

		for _, decl := range class.Methods {
			loc := annotations.SourceLocation{Class: class.Name, Method: decl.Name}
			parsed, err := s.parser.ParseAll(decl.Annotations, loc)
			if err != nil {
				return Metadata{}, err
			}
			params := decl.Params
			if params == nil {
				params = []string{}
			}
			scope := models.MethodInfo{
				EjbName:      bean.EjbName,
				ClassName:    class.Name,
				MethodName:   decl.Name,
				MethodParams: params,
			}
			named := &models.NamedMethodInfo{MethodName: decl.Name, MethodParams: params}
			if err := md.collect(parsed, bean, class.Name, scope, named); err != nil {
				return Metadata{}, err
			}
		}
	}
	return md, nil
}

// collect converts the annotations of one element. method is nil for class
// annotations.
func (md *Metadata) collect(parsed []*annotations.ParsedAnnotation, bean models.BeanInfo, className string, scope models.MethodInfo, method *models.NamedMethodInfo) error {
	security := 0
	binding := models.InterceptorBindingInfo{EjbName: bean.EjbName, ClassName: className, Method: method}
	hasBinding := false

	for _, a := range parsed {
		scopes := []models.MethodInfo{scope}

		switch a.Type {
		case annotations.TransactionAttributeAnnotation:
			ta, err := models.ParseTransAttribute(a.GetString("value"))
			if err != nil {
				return annotationError(bean, a, err)
			}
			md.Transactions = append(md.Transactions, models.MethodTransactionInfo{
				Description:    a.Raw,
				TransAttribute: ta,
				Methods:        scopes,
			})

		case annotations.LockAnnotation:
			lock, err := models.ParseLockType(a.GetString("value"))
			if err != nil {
				return annotationError(bean, a, err)
			}
			md.Concurrency = append(md.Concurrency, models.MethodConcurrencyInfo{
				Description: a.Raw,
				Lock:        &lock,
				Methods:     scopes,
			})

		case annotations.AccessTimeoutAnnotation:
			unit, err := models.ParseTimeUnit(a.GetString("unit"))
			if err != nil {
				return annotationError(bean, a, err)
			}
			md.Concurrency = append(md.Concurrency, models.MethodConcurrencyInfo{
				Description:   a.Raw,
				AccessTimeout: &models.Timeout{Time: a.GetInt("value"), Unit: unit},
				Methods:       scopes,
			})

		case annotations.RolesAllowedAnnotation, annotations.PermitAllAnnotation, annotations.DenyAllAnnotation:
			security++
			if security > 1 {
				return annotationError(bean, a, fmt.Errorf("conflicts with another security annotation on %s", a.Location))
			}
			md.Permissions = append(md.Permissions, models.MethodPermissionInfo{
				Description: a.Raw,
				RoleNames:   a.GetStringSlice("value"),
				Unchecked:   a.Type == annotations.PermitAllAnnotation,
				Excluded:    a.Type == annotations.DenyAllAnnotation,
				Methods:     scopes,
			})

		case annotations.InterceptorsAnnotation:
			hasBinding = true
			binding.Interceptors = append(binding.Interceptors, a.GetStringSlice("value")...)
			for _, ic := range a.GetStringSlice("value") {
				md.Interceptors = append(md.Interceptors, models.InterceptorInfo{ClassName: ic})
			}

		case annotations.ExcludeClassInterceptorsAnnotation:
			hasBinding = true
			binding.ExcludeClassInterceptors = true

		case annotations.ExcludeDefaultInterceptorsAnnotation:
			hasBinding = true
			binding.ExcludeDefaultInterceptors = true
		}
	}

	if hasBinding {
		md.InterceptorBindings = append(md.InterceptorBindings, binding)
	}
	return nil
}

func annotationError(bean models.BeanInfo, a *annotations.ParsedAnnotation, err error) error {
	return errors.NewConfigurationError(bean.EjbName, fmt.Sprintf("%s: %v", a.Raw, err)).
		WithLocation(errors.SourceLocation{File: a.Location.String()})
}
