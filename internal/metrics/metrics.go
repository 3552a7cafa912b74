// Package metrics exposes Prometheus instrumentation for UNO matches.
package metrics

import (
	"bytes"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const namespace = "uno"

// Recorder counts match lifecycle events. A nil *Recorder is a no-op.
type Recorder struct {
	gatherer prometheus.Gatherer

	matchesActive   prometheus.Gauge
	gamesStarted    prometheus.Counter
	gamesFinished   *prometheus.CounterVec
	autoMoves       *prometheus.CounterVec
	actionsRejected *prometheus.CounterVec
	cardsPlayed     prometheus.Counter
	scoreWrites     *prometheus.CounterVec
}

// NewRecorder registers the UNO collectors on reg.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		gatherer: reg,
		matchesActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "matches_active",
			Help:      "Number of UNO matches currently running.",
		}),
		gamesStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games dealt after both players joined.",
		}),
		gamesFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games finished, by end reason.",
		}, []string{"reason"}),
		autoMoves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auto_moves_total",
			Help:      "Moves forced by the turn timer, by kind.",
		}, []string{"kind"}),
		actionsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_rejected_total",
			Help:      "Client actions rejected by the engine, by error code.",
		}, []string{"code"}),
		cardsPlayed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cards_played_total",
			Help:      "Cards played onto the discard pile.",
		}),
		scoreWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_writes_total",
			Help:      "Final score writes, by outcome.",
		}, []string{"outcome"}),
	}
}

func (r *Recorder) MatchOpened() {
	if r == nil {
		return
	}
	r.matchesActive.Inc()
}

func (r *Recorder) MatchClosed() {
	if r == nil {
		return
	}
	r.matchesActive.Dec()
}

func (r *Recorder) GameStarted() {
	if r == nil {
		return
	}
	r.gamesStarted.Inc()
}

func (r *Recorder) GameFinished(reason string) {
	if r == nil {
		return
	}
	r.gamesFinished.WithLabelValues(reason).Inc()
}

func (r *Recorder) AutoMove(kind string) {
	if r == nil {
		return
	}
	r.autoMoves.WithLabelValues(kind).Inc()
}

func (r *Recorder) ActionRejected(code string) {
	if r == nil {
		return
	}
	r.actionsRejected.WithLabelValues(code).Inc()
}

func (r *Recorder) CardPlayed() {
	if r == nil {
		return
	}
	r.cardsPlayed.Inc()
}

// ScoreWrite records the outcome of persisting final scores.
func (r *Recorder) ScoreWrite(err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.scoreWrites.WithLabelValues(outcome).Inc()
}

// Text renders every registered metric in the Prometheus text exposition format.
func (r *Recorder) Text() (string, error) {
	if r == nil {
		return "", nil
	}
	families, err := r.gatherer.Gather()
	if err != nil {
		return "", fmt.Errorf("failed to gather metrics: %w", err)
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return buf.String(), nil
}
