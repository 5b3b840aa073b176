package cachelistener

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/resctx/resctx-runtime/pkg/ids"
)

// PrometheusListener reports cache activity as Prometheus counters, labeled
// by cache kind (condition/conditionSet/decision). Grounded on Azure-eno's
// resource cache metrics (internal/resource/metrics.go), which registers a
// small fixed set of counters at construction and increments them inline on
// the cache's hot path rather than wrapping every call in reflection-based
// instrumentation.
type PrometheusListener struct {
	hits        *prometheus.CounterVec
	misses      *prometheus.CounterVec
	errors      *prometheus.CounterVec
	clears      prometheus.Counter
	contextErrs prometheus.Counter
}

// NewPrometheusListener builds and registers the resolver cache's counters
// against reg. Callers typically pass prometheus.DefaultRegisterer or a
// *prometheus.Registry scoped to their process.
func NewPrometheusListener(reg prometheus.Registerer) *PrometheusListener {
	l := &PrometheusListener{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resctx",
			Subsystem: "resolver",
			Name:      "cache_hits_total",
			Help:      "Resolver cache hits, by entity kind.",
		}, []string{"kind"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resctx",
			Subsystem: "resolver",
			Name:      "cache_misses_total",
			Help:      "Resolver cache misses, by entity kind.",
		}, []string{"kind"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resctx",
			Subsystem: "resolver",
			Name:      "cache_errors_total",
			Help:      "Resolver evaluation errors, by entity kind.",
		}, []string{"kind"}),
		clears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resctx",
			Subsystem: "resolver",
			Name:      "cache_clears_total",
			Help:      "Resolver cache clear events.",
		}),
		contextErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resctx",
			Subsystem: "resolver",
			Name:      "context_errors_total",
			Help:      "Conditions evaluated against a qualifier with no context value.",
		}),
	}
	reg.MustRegister(l.hits, l.misses, l.errors, l.clears, l.contextErrs)
	return l
}

func (l *PrometheusListener) OnHit(kind ids.Kind)  { l.hits.WithLabelValues(string(kind)).Inc() }
func (l *PrometheusListener) OnMiss(kind ids.Kind) { l.misses.WithLabelValues(string(kind)).Inc() }
func (l *PrometheusListener) OnError(kind ids.Kind, _ error) {
	l.errors.WithLabelValues(string(kind)).Inc()
}
func (l *PrometheusListener) OnClear()             { l.clears.Inc() }
func (l *PrometheusListener) OnContextError(error) { l.contextErrs.Inc() }
