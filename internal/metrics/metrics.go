package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "spasibki_front"

// Metrics собирает метрики фронтового сервера
type Metrics struct {
	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	gatherer        prometheus.Gatherer
}

// New регистрирует коллекторы в отдельном реестре
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Запросы к REST API бэкенда",
		}, []string{"route", "status"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Длительность запросов к бэкенду",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Входящие HTTP-запросы",
		}, []string{"method", "route", "status"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Количество живых сессий страниц",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.backendRequests,
		m.backendDuration,
		m.httpRequests,
		m.activeSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveBackend учитывает один запрос к бэкенду. status 0 означает сетевую ошибку
func (m *Metrics) ObserveBackend(route string, status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.backendRequests.WithLabelValues(route, label).Inc()
	m.backendDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) ObserveHTTP(method, route string, status int) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) SetSessions(n int) {
	m.activeSessions.Set(float64(n))
}

// Handler отдаёт метрики в формате prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
