// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes the drink ledger's Prometheus collectors.
//
// A [Metrics] value owns its own registry, so several instances (one per
// test, for example) never collide on collector names.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "drink_ledger"

// Metrics holds the ledger collectors and the registry they are exposed from.
type Metrics struct {
	registry *prometheus.Registry

	purchases        *prometheus.CounterVec
	purchasedAmount  *prometheus.CounterVec
	settlements      prometheus.Counter
	settledRows      prometheus.Counter
	requestDurations *prometheus.HistogramVec
}

// New creates the collectors and registers them together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Number of recorded purchases by product category.",
		}, []string{"product_type"}),
		purchasedAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchased_amount_total",
			Help:      "Sum of frozen purchase prices by product category.",
		}, []string{"product_type"}),
		settlements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Number of settle operations (single user or everyone).",
		}),
		settledRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settled_transactions_total",
			Help:      "Number of debt rows cleared by settlement.",
		}),
		requestDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.purchases,
		m.purchasedAmount,
		m.settlements,
		m.settledRows,
		m.requestDurations,
	)

	return m
}

// ObservePurchase counts one purchase of the given category.
func (m *Metrics) ObservePurchase(productType models.ProductType, price decimal.Decimal) {
	label := string(productType.Normalize())
	m.purchases.WithLabelValues(label).Inc()
	m.purchasedAmount.WithLabelValues(label).Add(price.InexactFloat64())
}

// ObserveSettlement counts one settle call that cleared the given rows.
func (m *Metrics) ObserveSettlement(cleared int64) {
	m.settlements.Inc()
	if cleared > 0 {
		m.settledRows.Add(float64(cleared))
	}
}

// ObserveRequest records the latency of one HTTP request. route is the
// router pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requestDurations.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
