package network

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	gamesStarted  prometheus.Counter
	gamesFinished *prometheus.CounterVec
	moves         *prometheus.CounterVec
	activeRooms   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		gamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "checkers",
			Name:      "games_started_total",
			Help:      "Games created.",
		}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkers",
			Name:      "games_finished_total",
			Help:      "Games that reached a result, by winner.",
		}, []string{"winner"}),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkers",
			Name:      "moves_total",
			Help:      "Moves submitted, by side and result.",
		}, []string{"side", "result"}),
		activeRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "checkers",
			Name:      "active_rooms",
			Help:      "Rooms currently held in memory.",
		}),
	}
	reg.MustRegister(m.gamesStarted, m.gamesFinished, m.moves, m.activeRooms)
	return m
}
