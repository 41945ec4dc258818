package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores expostos em /metrics
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	alerts   *prometheus.CounterVec
}

// NewMetrics cria um registro próprio com os coletores da aplicação e do runtime
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "colih",
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por rota, método e status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "colih",
			Name:      "http_request_duration_seconds",
			Help:      "Latência das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "colih",
			Name:      "gvp_alerts_total",
			Help:      "Alertas do GVP por resultado (sent, failed, skipped).",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.requests, m.duration, m.alerts,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

// Middleware mede as requisições; a rota é o padrão registrado, não o path
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.requests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expõe o registro no formato do Prometheus
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// AlertOutcome contabiliza o resultado de um alerta do GVP
func (m *Metrics) AlertOutcome(outcome string) {
	if m == nil {
		return
	}
	m.alerts.WithLabelValues(outcome).Inc()
}
