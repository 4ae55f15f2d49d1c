package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_loads_total",
		Help: "Total number of catalog loads by source and result",
	}, []string{"source", "result"})

	CatalogLoadLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_load_latency_seconds",
		Help:    "Latency of catalog document loads",
		Buckets: prometheus.DefBuckets,
	})

	CatalogItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalog_items",
		Help: "Number of items in the current catalog snapshot",
	}, []string{"kind"})

	CatalogAuditFindings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_audit_findings",
		Help: "Offers and combos whose discount data disagrees with their prices",
	})

	CartItemsAddedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Total number of successful add-to-cart operations",
	}, []string{"type"})

	CartAddRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_add_rejected_total",
		Help: "Total number of rejected add-to-cart operations",
	}, []string{"reason"})

	CartsClearedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carts_cleared_total",
		Help: "Total number of cleared carts",
	})

	CartStorageLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_storage_latency_seconds",
		Help:    "Latency of cart slot reads and writes",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	PurchaseLinksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "purchase_links_total",
		Help: "Total number of purchase handoff links generated",
	}, []string{"kind"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
