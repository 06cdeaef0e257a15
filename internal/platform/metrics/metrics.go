package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	envioRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiniela_envio_requests_total",
		Help: "Total de envios de pronosticos recibidos por estado",
	}, []string{"status"})

	contadorFallasTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiniela_contador_fallas_total",
		Help: "Incrementos de respuestas que fallaron despues de guardar el envio",
	})

	renderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quiniela_render_duration_seconds",
		Help:    "Tiempo para generar documentos PDF",
		Buckets: prometheus.DefBuckets,
	}, []string{"documento"})

	fixturesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiniela_fixtures_total",
		Help: "Consultas de calendario por fuente efectiva",
	}, []string{"fuente"})

	conciliacionesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiniela_conciliaciones_total",
		Help: "Quinielas revisadas por el conciliador por resultado",
	}, []string{"resultado"})

	conciliacionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quiniela_conciliacion_duration_seconds",
		Help:    "Tiempo de una pasada completa del conciliador",
		Buckets: prometheus.DefBuckets,
	})
)

func ObserveEnvioRequest(status string) {
	envioRequestsTotal.WithLabelValues(status).Inc()
}

func IncContadorFalla() {
	contadorFallasTotal.Inc()
}

func ObserveRender(documento string, seconds float64) {
	renderDuration.WithLabelValues(documento).Observe(seconds)
}

func IncFixtures(fuente string) {
	fixturesTotal.WithLabelValues(fuente).Inc()
}

func IncConciliacion(resultado string) {
	conciliacionesTotal.WithLabelValues(resultado).Inc()
}

func ObserveConciliacion(seconds float64) {
	conciliacionDuration.Observe(seconds)
}
