// Package monitoring holds the Prometheus metrics for lifecycle
// operations. Metrics are optional: a nil *Metrics is a valid no-op
// receiver so the library can run without a registry.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Creation result labels.
const (
	ResultOK          = "ok"
	ResultEngineError = "engine_error"
	ResultAgentError  = "agent_error"
	ResultExhausted   = "exhausted"
)

// Metrics holds all Prometheus metrics for the lifecycle manager.
type Metrics struct {
	Creations      *prometheus.CounterVec
	Deletions      prometheus.Counter
	CascadeRuns    prometheus.Counter
	RecoveryResets prometheus.Counter
	SlotsInUse     prometheus.Gauge
}

// New creates a metrics collector registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Creations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lwm2m_instance_creations_total",
				Help: "Object instance creation attempts by result",
			},
			[]string{"result"},
		),
		Deletions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "lwm2m_instance_deletions_total",
				Help: "Object instance deletions performed by the manager",
			},
		),
		CascadeRuns: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "lwm2m_cascade_deletions_total",
				Help: "Cascading deletions triggered by base instance removal",
			},
		),
		RecoveryResets: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "lwm2m_recovery_resets_total",
				Help: "Failed slots reset because a deletion freed resources",
			},
		),
		SlotsInUse: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "lwm2m_slots_in_use",
				Help: "Dependent instance slots currently in the created state",
			},
		),
	}
}

// Creation records one creation attempt.
func (m *Metrics) Creation(result string) {
	if m == nil {
		return
	}
	m.Creations.WithLabelValues(result).Inc()
	if result == ResultOK {
		m.SlotsInUse.Inc()
	}
}

// Deletion records one instance deletion of a previously created slot.
func (m *Metrics) Deletion() {
	if m == nil {
		return
	}
	m.Deletions.Inc()
	m.SlotsInUse.Dec()
}

// SlotReleased records a created slot reset without an engine deletion
// (deletion acknowledged after the server removed the instance).
func (m *Metrics) SlotReleased() {
	if m == nil {
		return
	}
	m.SlotsInUse.Dec()
}

// Cascade records one cascading deletion run.
func (m *Metrics) Cascade() {
	if m == nil {
		return
	}
	m.CascadeRuns.Inc()
}

// Recovered records n failed slots reset by the recovery sweep.
func (m *Metrics) Recovered(n int) {
	if m == nil || n == 0 {
		return
	}
	m.RecoveryResets.Add(float64(n))
}
