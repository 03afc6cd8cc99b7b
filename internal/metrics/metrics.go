// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every collector the service reports.
type Metrics struct {
	// HTTPRequests counts handled requests by method, route pattern and status.
	HTTPRequests *prometheus.CounterVec
	// ArticleSaves counts save attempts by result (ok, invalid, adapter_error).
	ArticleSaves *prometheus.CounterVec
	// ShopifyCalls counts Admin API calls by API (graphql, rest) and outcome.
	ShopifyCalls *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		ArticleSaves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogbuilder_article_saves_total",
				Help: "Article save attempts by result.",
			},
			[]string{"result"},
		),
		ShopifyCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogbuilder_shopify_calls_total",
				Help: "Shopify Admin API calls by API and outcome.",
			},
			[]string{"api", "outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.HTTPRequests, m.ArticleSaves, m.ShopifyCalls} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
