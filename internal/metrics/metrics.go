package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records
// nothing, which keeps services usable in tests without a registry.
type Metrics struct {
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	tieUpRequests   prometheus.Counter
	tieUpsAccepted  prometheus.Counter
	ordersPlaced    prometheus.Counter
	orderStatus     *prometheus.CounterVec
	inventoryUpsert *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		tieUpRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tieup_requests_total",
			Help: "Tie-up requests created",
		}),
		tieUpsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tieup_accepted_total",
			Help: "Tie-ups moved to accepted",
		}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders placed by supermarkets",
		}),
		orderStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_status_updates_total",
			Help: "Order status updates by new status",
		}, []string{"status"}),
		inventoryUpsert: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_upserts_total",
			Help: "Inventory upserts by resulting stock level",
		}, []string{"level"}),
		gatherer: reg,
	}
	reg.MustRegister(
		m.requests, m.duration,
		m.tieUpRequests, m.tieUpsAccepted,
		m.ordersPlaced, m.orderStatus, m.inventoryUpsert,
	)
	return m
}

// Middleware records request count and latency labelled by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requests.WithLabelValues(c.Request.Method, path, status).Inc()
		m.duration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) TieUpRequested() {
	if m != nil {
		m.tieUpRequests.Inc()
	}
}

func (m *Metrics) TieUpAccepted() {
	if m != nil {
		m.tieUpsAccepted.Inc()
	}
}

func (m *Metrics) OrderPlaced() {
	if m != nil {
		m.ordersPlaced.Inc()
	}
}

// OrderStatusChanged counts a status update. Statuses are free text, so the
// label is folded to pending, delivered or other.
func (m *Metrics) OrderStatusChanged(status string) {
	if m != nil {
		m.orderStatus.WithLabelValues(statusLabel(status)).Inc()
	}
}

func statusLabel(status string) string {
	switch s := strings.ToLower(strings.TrimSpace(status)); s {
	case "pending", "delivered":
		return s
	default:
		return "other"
	}
}

func (m *Metrics) InventoryUpserted(level string) {
	if m != nil {
		m.inventoryUpsert.WithLabelValues(level).Inc()
	}
}
