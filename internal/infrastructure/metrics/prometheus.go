// Package metrics exports coordinator activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nativewindow"

// Metrics implements port.CoordinatorMetrics with Prometheus collectors.
type Metrics struct {
	CommandsQueued  prometheus.Counter
	QueueDepth      prometheus.Gauge
	CommandsDropped prometheus.Counter
	CommandFailures *prometheus.CounterVec

	EventsDeferred  *prometheus.CounterVec
	EventsDropped   *prometheus.CounterVec
	EventsDelivered *prometheus.CounterVec

	MessagesRejected prometheus.Counter

	CycleDuration     prometheus.Histogram
	CommandsProcessed prometheus.Counter
	LiveWindows       prometheus.Gauge
}

var _ port.CoordinatorMetrics = (*Metrics)(nil)

// New registers the coordinator collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CommandsQueued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_queued_total",
			Help:      "Total number of commands accepted into the queue",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "command_queue_depth",
			Help:      "Commands waiting for the next pump cycle",
		}),
		CommandsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_dropped_total",
			Help:      "Commands discarded because the queue was full",
		}),
		CommandFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_failures_total",
			Help:      "Commands the platform failed to apply",
		}, []string{"command"}),
		EventsDeferred: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_deferred_total",
			Help:      "Events buffered because they were raised during a pump cycle",
		}, []string{"kind"}),
		EventsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Events discarded because a buffer limit was reached",
		}, []string{"kind"}),
		EventsDelivered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_delivered_total",
			Help:      "Events handed to a registered handler",
		}, []string{"kind"}),
		MessagesRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_rejected_total",
			Help:      "Messages dropped because their source was not trusted",
		}),
		CycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pump_cycle_duration_seconds",
			Help:      "Duration of one pump cycle",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .016, .05, .1, .5, 1},
		}),
		CommandsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_processed_total",
			Help:      "Commands handed to the platform by pump cycles",
		}),
		LiveWindows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "windows_live",
			Help:      "Windows currently registered",
		}),
	}
}

func (m *Metrics) CommandQueued(depth int) {
	m.CommandsQueued.Inc()
	m.QueueDepth.Set(float64(depth))
}

func (m *Metrics) CommandDropped() { m.CommandsDropped.Inc() }

func (m *Metrics) CommandFailed(kind string) { m.CommandFailures.WithLabelValues(kind).Inc() }

func (m *Metrics) EventDeferred(kind window.EventKind) {
	m.EventsDeferred.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) EventDropped(kind window.EventKind) {
	m.EventsDropped.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) EventDelivered(kind window.EventKind) {
	m.EventsDelivered.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) MessageRejected() { m.MessagesRejected.Inc() }

func (m *Metrics) CycleCompleted(d time.Duration, commands int) {
	m.CycleDuration.Observe(d.Seconds())
	m.CommandsProcessed.Add(float64(commands))
}

func (m *Metrics) WindowsLive(n int) { m.LiveWindows.Set(float64(n)) }
