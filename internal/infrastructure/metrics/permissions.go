package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/Agenda-api/internal/application/ports"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

var _ ports.PermissionObserver = (*PermissionMetrics)(nil)

// PermissionMetrics implementa ports.PermissionObserver con colectores Prometheus.
type PermissionMetrics struct {
	loadDuration *prometheus.HistogramVec
	loads        *prometheus.CounterVec
	checks       *prometheus.CounterVec
}

// NewPermissionMetrics crea y registra los colectores en reg.
func NewPermissionMetrics(reg prometheus.Registerer) *PermissionMetrics {
	m := &PermissionMetrics{
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "permissions_load_duration_seconds",
			Help:    "Duración de la carga de permisos de una empresa (lecturas + resolución)",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"outcome"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "permissions_load_total",
			Help: "Cargas de permisos por resultado (ok, not_found, unavailable)",
		}, []string{"outcome"}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "module_checks_total",
			Help: "Decisiones del guard de módulos",
		}, []string{"module", "decision"}),
	}
	reg.MustRegister(m.loadDuration, m.loads, m.checks)
	return m
}

// ObserveLoad registra una carga de permisos.
func (m *PermissionMetrics) ObserveLoad(outcome string, elapsed time.Duration) {
	m.loadDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	m.loads.WithLabelValues(outcome).Inc()
}

// ObserveCheck registra una decisión del guard.
func (m *PermissionMetrics) ObserveCheck(module modules.ModuleName, allowed bool) {
	decision := "denied"
	if allowed {
		decision = "allowed"
	}
	m.checks.WithLabelValues(string(module), decision).Inc()
}
