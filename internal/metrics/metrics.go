// Package metrics exposes deployment and resolution telemetry through a
// private Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives assembler events
type Recorder interface {
	RecordDeploy(app string, duration time.Duration, err error)
	RecordUndeploy(app string)
	RecordRules(app, category string, count int)
	RecordResolved(app, category string, methods, resolved int)
	RecordResourceCycle(app string)
	SetDeployments(n int)
}

// Collector provides resolution metrics collection.
type Collector struct {
	registry *prometheus.Registry

	deployments     prometheus.Gauge
	deployTotal     *prometheus.CounterVec
	deployLatency   *prometheus.HistogramVec
	undeployTotal   prometheus.Counter
	rules           *prometheus.GaugeVec
	methods         *prometheus.GaugeVec
	resolvedMethods *prometheus.GaugeVec
	resourceCycles  *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "ejbmeta"
	}

	c := &Collector{registry: prometheus.NewRegistry()}

	c.deployments = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "deployments",
		Help:      "Number of currently published deployments",
	})

	c.deployTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "deploy",
			Name:      "total",
			Help:      "Total number of deploy attempts",
		},
		[]string{"app", "result"},
	)

	c.deployLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "deploy",
			Name:      "duration_seconds",
			Help:      "Time taken to resolve and publish an application",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		},
		[]string{"result"},
	)

	c.undeployTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "undeploy",
		Name:      "total",
		Help:      "Total number of undeployed applications",
	})

	c.rules = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "rules",
			Help:      "Normalized rules per category in the last deployment of an application",
		},
		[]string{"app", "category"},
	)

	c.methods = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "methods",
			Help:      "Inventory methods considered per category",
		},
		[]string{"app", "category"},
	)

	c.resolvedMethods = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolved_methods",
			Help:      "Methods with an explicit attribute per category",
		},
		[]string{"app", "category"},
	)

	c.resourceCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resources",
			Name:      "cycles_total",
			Help:      "Deployments rejected because of circular resource references",
		},
		[]string{"app"},
	)

	c.registry.MustRegister(
		c.deployments,
		c.deployTotal,
		c.deployLatency,
		c.undeployTotal,
		c.rules,
		c.methods,
		c.resolvedMethods,
		c.resourceCycles,
	)
	return c
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// RecordDeploy records a deploy attempt
func (c *Collector) RecordDeploy(app string, duration time.Duration, err error) {
	result := resultLabel(err)
	c.deployTotal.WithLabelValues(app, result).Inc()
	c.deployLatency.WithLabelValues(result).Observe(duration.Seconds())
}

// RecordUndeploy records a removed application and drops its gauges
func (c *Collector) RecordUndeploy(app string) {
	c.undeployTotal.Inc()
	c.rules.DeletePartialMatch(prometheus.Labels{"app": app})
	c.methods.DeletePartialMatch(prometheus.Labels{"app": app})
	c.resolvedMethods.DeletePartialMatch(prometheus.Labels{"app": app})
}

// RecordRules records the normalized rule count of one category
func (c *Collector) RecordRules(app, category string, count int) {
	c.rules.WithLabelValues(app, category).Set(float64(count))
}

// RecordResolved records how many methods a category covered
func (c *Collector) RecordResolved(app, category string, methods, resolved int) {
	c.methods.WithLabelValues(app, category).Set(float64(methods))
	c.resolvedMethods.WithLabelValues(app, category).Set(float64(resolved))
}

// RecordResourceCycle records a rejected resource graph
func (c *Collector) RecordResourceCycle(app string) {
	c.resourceCycles.WithLabelValues(app).Inc()
}

// SetDeployments sets the published deployment count
func (c *Collector) SetDeployments(n int) {
	c.deployments.Set(float64(n))
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// NoOpCollector discards every event
type NoOpCollector struct{}

// NewNoOpCollector creates a recorder that does nothing
func NewNoOpCollector() *NoOpCollector {
	return &NoOpCollector{}
}

func (*NoOpCollector) RecordDeploy(app string, d time.Duration, err error)        {}
func (*NoOpCollector) RecordUndeploy(app string)                                  {}
func (*NoOpCollector) RecordRules(app, category string, count int)                {}
func (*NoOpCollector) RecordResolved(app, category string, methods, resolved int) {}
func (*NoOpCollector) RecordResourceCycle(app string)                             {}
func (*NoOpCollector) SetDeployments(n int)                                       {}
