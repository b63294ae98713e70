package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service implements Metrics on top of Prometheus collectors.
type Service struct {
	BoardLoads         prometheus.Counter
	BoardSaves         prometheus.Counter
	SaveRowFailures    prometheus.Counter
	PlacementsRejected prometheus.Counter
	GoalEvents         prometheus.Counter
	SaveDuration       prometheus.Histogram
	StartupTimeSeconds prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		BoardLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tactics_board_loads_total",
			Help: "The total number of board loads from the record store.",
		}),
		BoardSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tactics_board_saves_total",
			Help: "The total number of board save batches issued.",
		}),
		SaveRowFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tactics_save_row_failures_total",
			Help: "The total number of per-player row upserts that failed during a save.",
		}),
		PlacementsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tactics_placements_rejected_total",
			Help: "The total number of placements rejected for capacity or role reasons.",
		}),
		GoalEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tactics_goal_events_total",
			Help: "The total number of goal events added, edited or removed.",
		}),
		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tactics_save_duration_seconds",
			Help:    "The duration of board save batches.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tactics_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.BoardLoads,
		s.BoardSaves,
		s.SaveRowFailures,
		s.PlacementsRejected,
		s.GoalEvents,
		s.SaveDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncBoardLoads() {
	s.BoardLoads.Inc()
}

func (s *Service) IncBoardSaves() {
	s.BoardSaves.Inc()
}

func (s *Service) IncSaveRowFailures() {
	s.SaveRowFailures.Inc()
}

func (s *Service) IncPlacementsRejected() {
	s.PlacementsRejected.Inc()
}

func (s *Service) IncGoalEvents() {
	s.GoalEvents.Inc()
}

func (s *Service) ObserveSaveDuration(duration float64) {
	s.SaveDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
