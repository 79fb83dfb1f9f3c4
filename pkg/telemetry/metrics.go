// Package telemetry exposes Prometheus collectors for the audit trail and the
// HTTP surface.
package telemetry

import (
	"context"
	"strconv"

	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the service collectors.
type Metrics struct {
	ActivityEntries  *prometheus.CounterVec
	ActivityFailures *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ActivityEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "go_contacts_activity_entries_total",
			Help: "Total number of activity log entries persisted",
		}, []string{"action"}),
		ActivityFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "go_contacts_activity_log_failures_total",
			Help: "Total number of activity log writes rejected or failed",
		}, []string{"reason"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "go_contacts_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
	}
}

// ObserveActivity counts a persisted entry.
func (m *Metrics) ObserveActivity(entry types.ActivityEntry) {
	if m == nil {
		return
	}
	m.ActivityEntries.WithLabelValues(entry.Action.String()).Inc()
}

// ObserveActivityFailure counts a rejected or failed write.
func (m *Metrics) ObserveActivityFailure(failure types.ActivityFailure) {
	if m == nil {
		return
	}
	reason := failure.Reason
	if reason == "" {
		reason = "unknown"
	}
	m.ActivityFailures.WithLabelValues(reason).Inc()
}

// ObserveRequest counts one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Hooks returns activity hooks feeding the collectors. Existing callbacks in
// base are preserved and run first.
func (m *Metrics) Hooks(base types.Hooks) types.Hooks {
	prevActivity := base.AfterActivity
	prevFailure := base.AfterActivityFailure
	base.AfterActivity = func(ctx context.Context, entry types.ActivityEntry) {
		if prevActivity != nil {
			prevActivity(ctx, entry)
		}
		m.ObserveActivity(entry)
	}
	base.AfterActivityFailure = func(ctx context.Context, failure types.ActivityFailure) {
		if prevFailure != nil {
			prevFailure(ctx, failure)
		}
		m.ObserveActivityFailure(failure)
	}
	return base
}
