// Package metrics provides Prometheus metrics for the vendor backend.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vendor_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Settlement Metrics
	SettlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_settlements_total",
			Help: "Settled trades by outcome",
		},
		[]string{"outcome"}, // "ok", "ok_with_warnings", "rejected"
	)

	SettlementWarningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_settlement_warnings_total",
			Help: "Per-item store failures swallowed during settlement",
		},
		[]string{"step"}, // "delete_outgoing", "create_incoming", "cash_update"
	)

	SettlementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vendor_settlement_duration_seconds",
			Help:    "Time taken to settle a trade",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	// Inventory Metrics
	InventoryItemsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vendor_inventory_items_total",
			Help: "Number of items currently in inventory",
		},
		[]string{"account"},
	)

	InventoryValueUSD = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vendor_inventory_value_usd",
			Help: "Total estimated market value of inventory in USD",
		},
		[]string{"account"},
	)

	CashOnHandUSD = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vendor_cash_on_hand_usd",
			Help: "Cash balance in USD",
		},
		[]string{"account"},
	)

	ValuationSamplesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendor_valuation_samples_total",
			Help: "Valuation samples appended to the dashboard log",
		},
	)

	// Catalog API Metrics
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_catalog_requests_total",
			Help: "Catalog lookup requests by result",
		},
		[]string{"result"}, // "hit", "miss", "error", "rate_limited"
	)

	CatalogQuotaRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vendor_catalog_quota_remaining",
			Help: "Remaining catalog API requests for today",
		},
	)

	CatalogRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vendor_catalog_request_duration_seconds",
			Help:    "Catalog API call latency",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	// Price Refresh Metrics
	PriceRefreshTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendor_price_refresh_total",
			Help: "Inventory entries whose market value was refreshed",
		},
	)

	PriceRefreshBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vendor_price_refresh_batch_duration_seconds",
			Help:    "Time taken to process a price refresh batch",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
)
