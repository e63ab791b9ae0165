package trackers

import (
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	ts "github.com/samuelfneumann/antjump/timestep"
	"go.uber.org/multierr"
)

const namespace = "antjump"

// Metrics exports the progress of an AntJump experiment as Prometheus
// metrics. Metrics has nothing to save.
type Metrics struct {
	env           InfoSource
	currentReturn float64

	steps        prometheus.Counter
	episodes     *prometheus.CounterVec
	returns      prometheus.Histogram
	maxHeight    prometheus.Gauge
	goalDistance prometheus.Gauge
}

// NewMetrics returns a new Metrics tracker for env whose collectors are
// registered with reg
func NewMetrics(reg prometheus.Registerer, env InfoSource) (*Metrics,
	error) {
	m := &Metrics{
		env: env,
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Number of environment steps taken.",
		}),
		episodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "episodes_total",
			Help:      "Number of finished episodes by how they ended.",
		}, []string{"end"}),
		returns: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "episode_return",
			Help:      "Return of finished episodes.",
			Buckets:   prometheus.LinearBuckets(-25, 2.5, 12),
		}),
		maxHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "episode_max_height",
			Help:      "Highest torso height of the last finished episode.",
		}),
		goalDistance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "episode_goal_distance",
			Help: "Distance between the max height and the goal height " +
				"of the last finished episode.",
		}),
	}

	var err error
	for _, c := range []prometheus.Collector{m.steps, m.episodes, m.returns,
		m.maxHeight, m.goalDistance} {
		err = multierr.Append(err, reg.Register(c))
	}
	if err != nil {
		return nil, fmt.Errorf("newMetrics: %v", err)
	}

	return m, nil
}

// Track updates the metrics with a TimeStep
func (m *Metrics) Track(t ts.TimeStep) {
	if t.First() {
		m.currentReturn = 0.0
		return
	}

	m.steps.Inc()
	m.currentReturn += t.Reward

	if t.Last() {
		info := m.env.Info()
		m.episodes.WithLabelValues(t.EndType().String()).Inc()
		m.returns.Observe(m.currentReturn)
		m.maxHeight.Set(info.MaxHeight)
		m.goalDistance.Set(math.Abs(info.MaxHeight - info.Goal))
	}
}

// Save implements the Tracker interface
func (m *Metrics) Save() error {
	return nil
}
