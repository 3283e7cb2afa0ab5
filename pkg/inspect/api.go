package inspect

import (
	"net/http"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/toyz/ejbmeta/internal/registry"
)

// Routes served by the API
const (
	DeploymentsPath Path = "/deployments"
	DeploymentPath  Path = "/deployments/{app}"
	BeanPath        Path = "/deployments/{app}/beans/{bean}"
	MetricsPath          = "/metrics"
)

// API answers read-only queries against a deployment registry
type API struct {
	registry registry.DeploymentRegistry
	metrics  http.Handler
	log      *logrus.Entry
}

// NewAPI creates an API. A nil metrics handler leaves /metrics unrouted.
func NewAPI(reg registry.DeploymentRegistry, metrics http.Handler, log *logrus.Logger) *API {
	return &API{
		registry: reg,
		metrics:  metrics,
		log:      log.WithField("component", "inspect"),
	}
}

// Register adds the API routes to ws
func (a *API) Register(ws WebServer) {
	ws.RegisterRoute(http.MethodGet, DeploymentsPath, a.listDeployments)
	ws.RegisterRoute(http.MethodGet, DeploymentPath, a.getDeployment)
	ws.RegisterRoute(http.MethodGet, BeanPath, a.getBean)
	if a.metrics != nil {
		ws.Mount(MetricsPath, a.metrics)
	}
	a.log.WithField("server", ws.Name()).Debug("registered inspection routes")
}

func (a *API) listDeployments(c RequestContext) error {
	apps := a.registry.Apps()
	sort.Strings(apps)

	views := make([]DeploymentView, 0, len(apps))
	for _, app := range apps {
		if d, ok := a.registry.Get(app); ok {
			views = append(views, NewDeploymentView(d))
		}
	}
	return c.JSON(http.StatusOK, views)
}

func (a *API) getDeployment(c RequestContext) error {
	d, err := a.deployment(c.Param("app"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NewDeploymentView(d))
}

func (a *API) getBean(c RequestContext) error {
	d, err := a.deployment(c.Param("app"))
	if err != nil {
		return err
	}
	name := c.Param("bean")
	bean, ok := d.Bean(name)
	if !ok {
		return ErrNotFound("bean %q is not part of %s", name, d.App)
	}

	view := NewBeanView(bean, c.QueryParam("method"))
	a.log.WithFields(logrus.Fields{
		"app":     d.App,
		"bean":    name,
		"methods": len(view.Methods),
	}).Debug("served bean")
	return c.JSON(http.StatusOK, view)
}

func (a *API) deployment(app string) (*registry.Deployment, error) {
	if app == "" {
		return nil, ErrBadRequest("application name is required")
	}
	d, ok := a.registry.Get(app)
	if !ok {
		return nil, ErrNotFound("application %q is not deployed", app)
	}
	return d, nil
}
