// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// the login and preference flows.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tzsync"

// Recorder is what use cases and middleware report to.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordLogin(provider, outcome string)
	RecordSessionResolution(outcome string)
	RecordPreferenceWrite(operation, outcome string)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	logins          *prometheus.CounterVec
	sessions        *prometheus.CounterVec
	writes          *prometheus.CounterVec
}

// NewCollector registers the service metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oauth_logins_total",
			Help:      "OAuth callback outcomes by provider.",
		}, []string{"provider", "outcome"}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_resolutions_total",
			Help:      "Session cookie resolutions by outcome.",
		}, []string{"outcome"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preference_writes_total",
			Help:      "Timezone set and delete operations by outcome.",
		}, []string{"operation", "outcome"}),
	}

	reg.MustRegister(
		c.requests,
		c.requestDuration,
		c.logins,
		c.sessions,
		c.writes,
	)

	return c
}

// NewRegistry returns a registry with the Go runtime and process collectors
// already registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordLogin(provider, outcome string) {
	c.logins.WithLabelValues(provider, outcome).Inc()
}

func (c *Collector) RecordSessionResolution(outcome string) {
	c.sessions.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordPreferenceWrite(operation, outcome string) {
	c.writes.WithLabelValues(operation, outcome).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used where metrics are not wired, such as tests.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordLogin(string, string)                       {}
func (Nop) RecordSessionResolution(string)                   {}
func (Nop) RecordPreferenceWrite(string, string)             {}

var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = Nop{}
)
