// Package metrics exposes authentication counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeRejected   = "rejected"
	OutcomeError      = "error"
	MethodSignup      = "signup"
	MethodLogin       = "login"
	MethodOAuth2      = "oauth2"
	MethodLogout      = "logout"
	MethodSessionAuth = "session"
)

type Recorder interface {
	RecordAttempt(method, outcome string)
	RecordSessionIssued()
	RecordExchangeLatency(provider string, d time.Duration)
}

type Collector struct {
	attempts        *prometheus.CounterVec
	sessionsIssued  prometheus.Counter
	exchangeLatency *prometheus.HistogramVec
}

var _ Recorder = (*Collector)(nil)

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authd_auth_attempts_total",
			Help: "Authentication attempts by method and outcome.",
		}, []string{"method", "outcome"}),
		sessionsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authd_sessions_issued_total",
			Help: "Sessions bound to a user.",
		}),
		exchangeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "authd_oauth2_exchange_seconds",
			Help:    "Latency of OAuth2 code exchange and profile fetch.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}

	reg.MustRegister(
		c.attempts,
		c.sessionsIssued,
		c.exchangeLatency,
	)

	return c
}

func (c *Collector) RecordAttempt(method, outcome string) {
	c.attempts.WithLabelValues(method, outcome).Inc()
}

func (c *Collector) RecordSessionIssued() {
	c.sessionsIssued.Inc()
}

func (c *Collector) RecordExchangeLatency(provider string, d time.Duration) {
	c.exchangeLatency.WithLabelValues(provider).Observe(d.Seconds())
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type Nop struct{}

func (Nop) RecordAttempt(string, string)                {}
func (Nop) RecordSessionIssued()                        {}
func (Nop) RecordExchangeLatency(string, time.Duration) {}
