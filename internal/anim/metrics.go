package anim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// commandsRecorded counts recorded commands by kind
	commandsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "algoviz_commands_recorded_total",
		Help: "Total commands recorded by kind",
	}, []string{"kind"})

	// stepsPlayed counts step groups applied by direction
	stepsPlayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "algoviz_steps_played_total",
		Help: "Total step groups played by direction",
	}, []string{"direction"})

	historyCleared = promauto.NewCounter(prometheus.CounterOpts{
		Name: "algoviz_history_cleared_entries_total",
		Help: "Total log entries discarded by clear history",
	})

	replayDivergence = promauto.NewCounter(prometheus.CounterOpts{
		Name: "algoviz_replay_divergence_total",
		Help: "Total replay verifications that found a divergence",
	})
)

const (
	directionForward  = "forward"
	directionBackward = "backward"
)
