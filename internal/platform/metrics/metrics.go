// Package metrics expone contadores Prometheus del store y del asistente.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implementa petstore.Recorder y assistant.Recorder.
type Collector struct {
	mutations        *prometheus.CounterVec
	remindersDerived prometheus.Counter
	persistFailures  *prometheus.CounterVec
	assistantReplies *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pethouse_store_mutations_total",
			Help: "Operaciones del store por nombre y si encontraron la entidad",
		}, []string{"op", "found"}),
		remindersDerived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pethouse_reminders_derived_total",
			Help: "Recordatorios de vacuna generados automáticamente",
		}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pethouse_persist_failures_total",
			Help: "Fallos al guardar una colección",
		}, []string{"key"}),
		assistantReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pethouse_assistant_replies_total",
			Help: "Respuestas del asistente por tema",
		}, []string{"topic"}),
	}

	reg.MustRegister(
		c.mutations,
		c.remindersDerived,
		c.persistFailures,
		c.assistantReplies,
	)
	return c
}

func (c *Collector) RecordMutation(op string, found bool) {
	c.mutations.WithLabelValues(op, strconv.FormatBool(found)).Inc()
}

func (c *Collector) RecordRemindersDerived(n int) {
	if n > 0 {
		c.remindersDerived.Add(float64(n))
	}
}

func (c *Collector) RecordPersistFailure(key string) {
	c.persistFailures.WithLabelValues(key).Inc()
}

func (c *Collector) RecordAssistantReply(topic string) {
	c.assistantReplies.WithLabelValues(topic).Inc()
}

// Handler sirve /metrics para el gatherer dado.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
