// Package metrics expone métricas Prometheus de importaciones, caché derivada y HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "changerank"

// Resultados de una importación o de una búsqueda en caché.
const (
	resultOK    = "ok"
	resultError = "error"
	resultHit   = "hit"
	resultMiss  = "miss"
)

// Metrics agrupa los colectores sobre un registro propio.
// Implementa importer.Observer y derived.Observer.
type Metrics struct {
	registry *prometheus.Registry

	importsTotal    *prometheus.CounterVec
	importRows      *prometheus.CounterVec
	importDuration  *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registra todos los colectores, incluidos los de runtime de Go y del proceso.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		importsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Importaciones de planillas por tipo y resultado.",
		}, []string{"kind", "result"}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Filas procesadas por importaciones exitosas.",
		}, []string{"kind"}),
		importDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Duración de cada importación.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"kind"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "derived_cache_lookups_total",
			Help:      "Búsquedas en la caché derivada por entrada y resultado.",
		}, []string{"entry", "result"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		m.importsTotal, m.importRows, m.importDuration,
		m.cacheLookups, m.requestsTotal, m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry devuelve el registro (tests y colectores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveImport registra el resultado de una importación.
func (m *Metrics) ObserveImport(kind string, rows int, err error, elapsed time.Duration) {
	result := resultOK
	if err != nil {
		result = resultError
	} else {
		m.importRows.WithLabelValues(kind).Add(float64(rows))
	}
	m.importsTotal.WithLabelValues(kind, result).Inc()
	m.importDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// CacheLookup registra un acierto o fallo de la caché derivada.
func (m *Metrics) CacheLookup(entry string, hit bool) {
	result := resultMiss
	if hit {
		result = resultHit
	}
	m.cacheLookups.WithLabelValues(entry, result).Inc()
}

// Middleware mide cada petición. La ruta es el patrón registrado, no la URL.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.requestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler sirve /metrics.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
