// Package assembler turns an application's deployment metadata into a
// published, immutable Deployment.
package assembler

import (
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/toyz/ejbmeta/internal/annotations"
	"github.com/toyz/ejbmeta/internal/config"
	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/interceptors"
	"github.com/toyz/ejbmeta/internal/metrics"
	"github.com/toyz/ejbmeta/internal/models"
	"github.com/toyz/ejbmeta/internal/normalizer"
	"github.com/toyz/ejbmeta/internal/registry"
	"github.com/toyz/ejbmeta/internal/resolver"
	"github.com/toyz/ejbmeta/internal/resources"
)

// Category labels used in logs and metrics
const (
	CategoryTransaction   = "transaction"
	CategoryLock          = "lock"
	CategoryAccessTimeout = "access_timeout"
	CategoryPermission    = "permission"
	CategoryInterceptor   = "interceptor"
)

// Assembler deploys applications into a registry
type Assembler struct {
	cfg        *config.Config
	log        *logrus.Entry
	metrics    metrics.Recorder
	registry   registry.DeploymentRegistry
	normalizer *normalizer.Normalizer

	mu  sync.Mutex // serializes deploy, redeploy and undeploy
	now func() time.Time
}

type options struct {
	annotations annotations.AnnotationRegistry
}

// Option configures an Assembler
type Option func(*options)

// WithAnnotations parses class annotations against r instead of a fresh
// registry of the built-in EJB annotations
func WithAnnotations(r annotations.AnnotationRegistry) Option {
	return func(o *options) { o.annotations = r }
}

// New creates an assembler. A nil recorder disables metrics.
func New(cfg *config.Config, log *logrus.Logger, recorder metrics.Recorder, reg registry.DeploymentRegistry, opts ...Option) (*Assembler, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoOpCollector()
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.annotations == nil {
		o.annotations = annotations.NewBuiltinRegistry()
	}

	parser, err := annotations.NewParser(o.annotations, cfg.Annotations.CacheSize)
	if err != nil {
		return nil, err
	}

	entry := log.WithField("component", "assembler")
	return &Assembler{
		cfg:        cfg,
		log:        entry,
		metrics:    recorder,
		registry:   reg,
		normalizer: normalizer.New(normalizer.NewScanner(parser), entry),
		now:        time.Now,
	}, nil
}

// Deploy resolves jar and publishes the result. Deploying an application
// that is already published is a registration error; use Redeploy.
func (a *Assembler) Deploy(jar *models.EjbJarInfo) (*registry.Deployment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if jar != nil {
		if _, exists := a.registry.Get(jar.ModuleID); exists {
			err := errors.NewRegistrationError("deployment", jar.ModuleID, "application is already deployed")
			err.WithSuggestion("undeploy it first or redeploy")
			return nil, err
		}
	}
	return a.deploy(jar)
}

// Redeploy resolves jar and swaps it in for the published deployment of the
// same application. On error the previous deployment stays published.
func (a *Assembler) Redeploy(jar *models.EjbJarInfo) (*registry.Deployment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.deploy(jar)
}

// Undeploy removes a published application
func (a *Assembler) Undeploy(app string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.registry.Remove(app); !ok {
		return errors.NewRegistrationError("deployment", app, "application is not deployed")
	}
	a.metrics.RecordUndeploy(app)
	a.metrics.SetDeployments(a.registry.Len())
	a.log.WithField("app", app).Info("undeployed application")
	return nil
}

func (a *Assembler) deploy(jar *models.EjbJarInfo) (*registry.Deployment, error) {
	start := a.now()
	app := ""
	if jar != nil {
		app = jar.ModuleID
	}

	d, err := a.Build(jar)
	if err == nil {
		var previous *registry.Deployment
		previous, err = a.registry.Publish(d)
		if err == nil && previous != nil {
			a.log.WithFields(logrus.Fields{"app": app, "replaced": previous.ID}).Debug("replaced deployment")
		}
	}

	a.metrics.RecordDeploy(app, a.now().Sub(start), err)
	if err != nil {
		a.log.WithField("app", app).WithError(err).Error("deployment failed")
		return nil, err
	}

	a.metrics.SetDeployments(a.registry.Len())
	a.log.WithFields(logrus.Fields{
		"app":   app,
		"id":    d.ID,
		"beans": len(d.Beans),
	}).Info("deployed application")
	return d, nil
}

// Build resolves jar without publishing it
func (a *Assembler) Build(jar *models.EjbJarInfo) (*registry.Deployment, error) {
	if err := validate(jar); err != nil {
		return nil, err
	}
	app := jar.ModuleID
	log := a.log.WithField("app", app)

	prefix := resources.WithPrefix(a.cfg.Resources.Prefix)
	ordered, err := resources.Sort(jar.Resources, prefix)
	if err != nil {
		var dep *errors.DependencyError
		if stderrors.As(err, &dep) && len(dep.Cycle) > 0 {
			a.metrics.RecordResourceCycle(app)
		}
		return nil, err
	}

	rules, err := a.normalizer.Normalize(jar)
	if err != nil {
		return nil, err
	}
	a.metrics.RecordRules(app, CategoryTransaction, len(rules.Transactions))
	a.metrics.RecordRules(app, CategoryLock, len(rules.Locks))
	a.metrics.RecordRules(app, CategoryAccessTimeout, len(rules.AccessTimeouts))
	a.metrics.RecordRules(app, CategoryPermission, len(rules.Permissions))
	a.metrics.RecordRules(app, CategoryInterceptor, len(rules.InterceptorBindings))

	inv := inventory{beans: jar.Beans, methods: make([][]models.Method, len(jar.Beans))}
	for i, bean := range jar.Beans {
		if inv.methods[i], err = resolver.Inventory(jar, bean); err != nil {
			return nil, err
		}
	}
	if err := checkReferences(jar, inv); err != nil {
		return nil, err
	}

	var opts []interceptors.Option
	if !a.cfg.Resolver.StrictInterceptors {
		opts = append(opts, interceptors.Lenient())
	}
	chains, err := interceptors.NewBuilder(rules.InterceptorBindings, rules.Interceptors, log, opts...)
	if err != nil {
		return nil, err
	}

	d := &registry.Deployment{
		ID:         uuid.New(),
		App:        app,
		DeployedAt: a.now(),
		Resources:  ordered,
		References: make(map[string][]string, len(ordered)),
		Beans:      make(map[string]*registry.BeanAttributes, len(jar.Beans)),
	}
	for _, r := range ordered {
		if refs := resources.References(r, ordered, prefix); len(refs) > 0 {
			d.References[r.ID] = refs
		}
	}

	var counts [4]struct{ methods, resolved int }
	for i, bean := range jar.Beans {
		methods := inv.methods[i]
		attrs := &registry.BeanAttributes{
			Bean:               bean,
			Methods:            methods,
			Transactions:       resolver.Resolve(rules.Transactions, bean, methods),
			Locks:              resolver.Resolve(rules.Locks, bean, methods),
			AccessTimeouts:     resolver.Resolve(rules.AccessTimeouts, bean, methods),
			Permissions:        resolver.Resolve(rules.Permissions, bean, methods),
			Interceptors:       chains.Build(bean, methods),
			DefaultTransaction: a.cfg.DefaultTransaction(),
		}
		d.Beans[bean.EjbName] = attrs

		for c, n := range [4][2]int{
			{attrs.Transactions.Len(), attrs.Transactions.Resolved()},
			{attrs.Locks.Len(), attrs.Locks.Resolved()},
			{attrs.AccessTimeouts.Len(), attrs.AccessTimeouts.Resolved()},
			{attrs.Permissions.Len(), attrs.Permissions.Resolved()},
		} {
			counts[c].methods += n[0]
			counts[c].resolved += n[1]
		}

		log.WithFields(logrus.Fields{
			"bean":    bean.EjbName,
			"methods": len(methods),
		}).Debug("resolved bean")
	}

	for i, category := range []string{CategoryTransaction, CategoryLock, CategoryAccessTimeout, CategoryPermission} {
		a.metrics.RecordResolved(app, category, counts[i].methods, counts[i].resolved)
	}
	return d, nil
}

// validate checks the structural integrity of jar before resolution
func validate(jar *models.EjbJarInfo) error {
	if jar == nil {
		return errors.New(errors.ConfigurationErrorCode, "no deployment metadata")
	}
	if jar.ModuleID == "" {
		return errors.New(errors.ConfigurationErrorCode, "module id cannot be empty").
			WithSuggestion("set the module name of the descriptor")
	}

	multi := errors.NewMultipleErrors()
	seen := make(map[string]bool, len(jar.Beans))
	for _, bean := range jar.Beans {
		switch {
		case bean.EjbName == "" || bean.EjbName == models.Wildcard:
			multi.Add(errors.NewConfigurationError(bean.EjbName, "invalid ejb-name"))
		case seen[bean.EjbName]:
			multi.Add(errors.NewConfigurationError(bean.EjbName, "ejb-name is declared more than once"))
		case bean.ClassName == "":
			multi.Add(errors.NewConfigurationError(bean.EjbName, "bean class cannot be empty"))
		}
		seen[bean.EjbName] = true
	}

	classes := make(map[string]bool, len(jar.Classes))
	for _, class := range jar.Classes {
		if classes[class.Name] {
			multi.Add(errors.New(errors.ConfigurationErrorCode, fmt.Sprintf("class %s is declared more than once", class.Name)))
		}
		classes[class.Name] = true
	}
	return multi.ErrOrNil()
}
