package interceptors

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/methodinfo"
	"github.com/toyz/ejbmeta/internal/models"
)

// Builder computes interceptor chains for the beans of one application
type Builder struct {
	bindings        []models.InterceptorBindingInfo // most specific first
	packageAndClass []models.InterceptorBindingInfo
	declared        map[string]bool
	log             *logrus.Entry
}

// Option configures a Builder
type Option func(*builderOptions)

type builderOptions struct {
	strict bool
}

// Lenient makes undeclared interceptor classes a logged warning instead of
// an error. The undeclared classes are left out of every chain.
func Lenient() Option {
	return func(o *builderOptions) { o.strict = false }
}

// NewBuilder prepares the bindings. Unless Lenient is given, a binding that
// names an interceptor class missing from declared is a configuration error.
func NewBuilder(bindings []models.InterceptorBindingInfo, declared map[string]bool, log *logrus.Entry, opts ...Option) (*Builder, error) {
	o := builderOptions{strict: true}
	for _, opt := range opts {
		opt(&o)
	}

	undeclared := make(map[string]string)
	for _, b := range bindings {
		for _, class := range Classes(b) {
			if !declared[class] {
				undeclared[class] = b.EjbName
			}
		}
	}
	if len(undeclared) > 0 {
		classes := make([]string, 0, len(undeclared))
		for class := range undeclared {
			classes = append(classes, class)
		}
		sort.Strings(classes)

		if o.strict {
			multi := errors.NewMultipleErrors()
			for _, class := range classes {
				multi.Add(errors.NewConfigurationError(undeclared[class],
					fmt.Sprintf("interceptor binding references undeclared interceptor %s", class)).
					WithSuggestion("declare the class in the interceptors section"))
			}
			return nil, multi.ErrOrNil()
		}
		for _, class := range classes {
			log.WithFields(logrus.Fields{
				"bean":        undeclared[class],
				"interceptor": class,
			}).Warn("interceptor binding references undeclared interceptor, skipping")
		}
	}

	b := &Builder{
		bindings: sortDescending(bindings),
		declared: declared,
		log:      log,
	}
	for _, binding := range b.bindings {
		level := LevelOf(binding)
		if level == PackageLevel || level.IsClass() {
			b.packageAndClass = append(b.packageAndClass, binding)
		}
	}
	return b, nil
}

// Chains is the interceptor chain of each method of one bean, plus the
// chain used for lifecycle callbacks. Chains is read-only.
type Chains struct {
	methods   map[models.MethodKey][]string
	keys      []models.MethodKey
	callbacks []string
}

// Get returns the interceptor classes of a method in invocation order
func (c *Chains) Get(key models.MethodKey) ([]string, bool) {
	chain, ok := c.methods[key]
	return chain, ok
}

// Keys returns the method keys in inventory order
func (c *Chains) Keys() []models.MethodKey {
	return append([]models.MethodKey(nil), c.keys...)
}

// Callbacks returns the lifecycle callback interceptors
func (c *Chains) Callbacks() []string {
	return c.callbacks
}

// Build computes the chains of one bean
func (b *Builder) Build(bean models.BeanInfo, methods []models.Method) *Chains {
	chains := &Chains{methods: make(map[models.MethodKey][]string, len(methods))}
	for i := range methods {
		key := methods[i].Key()
		if _, dup := chains.methods[key]; dup {
			continue
		}
		chains.keys = append(chains.keys, key)
		chains.methods[key] = b.chain(process(&methods[i], bean, b.bindings))
	}
	chains.callbacks = b.chain(process(nil, bean, b.packageAndClass))
	return chains
}

// chain flattens the applied bindings, least specific first
func (b *Builder) chain(applied []models.InterceptorBindingInfo) []string {
	result := []string{}
	for i := len(applied) - 1; i >= 0; i-- {
		for _, class := range Classes(applied[i]) {
			if !b.declared[class] {
				continue
			}
			result = append(result, class)
		}
	}
	return result
}

// process walks bindings, most specific first, and returns the bindings
// that apply to the method. A nil method selects lifecycle callbacks.
func process(method *models.Method, bean models.BeanInfo, bindings []models.InterceptorBindingInfo) []models.InterceptorBindingInfo {
	var applied []models.InterceptorBindingInfo
	excludes := make(map[Level]bool)

	for _, binding := range bindings {
		level := LevelOf(binding)
		if !implies(method, bean, level, binding) {
			continue
		}

		switch TypeOf(level, binding) {
		case ExplicitOrdering:
			if !excludes[level] {
				// an explicit order ends the walk: nothing at this level or below applies
				return append(applied, binding)
			}
		case SameAndLowerExclusion:
			return applied
		case SameLevelExclusion:
			excludes[level] = true
		}

		if !excludes[level] {
			applied = append(applied, binding)
		}
		if binding.ExcludeClassInterceptors {
			excludes[ClassLevel] = true
			excludes[AnnotationClassLevel] = true
		}
		if binding.ExcludeDefaultInterceptors {
			excludes[PackageLevel] = true
		}
	}
	return applied
}

// implies reports whether a binding is in scope for the method
func implies(method *models.Method, bean models.BeanInfo, level Level, binding models.InterceptorBindingInfo) bool {
	if level == PackageLevel {
		return true
	}
	if !methodinfo.MatchesBean(models.MethodInfo{EjbName: binding.EjbName}, bean) {
		return false
	}
	if level.IsClass() {
		return true
	}
	return method != nil && methodinfo.MatchesNamed(*binding.Method, *method)
}
