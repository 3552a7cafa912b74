package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.MatchOpened()
	r.MatchOpened()
	r.MatchClosed()
	r.GameStarted()
	r.GameFinished("empty_hand")
	r.GameFinished("empty_hand")
	r.GameFinished("opponent_left")
	r.AutoMove("auto_draw")
	r.ActionRejected("out_of_turn")
	r.CardPlayed()
	r.ScoreWrite(nil)
	r.ScoreWrite(errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.matchesActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.gamesStarted))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.gamesFinished.WithLabelValues("empty_hand")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.gamesFinished.WithLabelValues("opponent_left")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.autoMoves.WithLabelValues("auto_draw")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.actionsRejected.WithLabelValues("out_of_turn")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cardsPlayed))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.scoreWrites.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.scoreWrites.WithLabelValues("error")))
}

func TestRecorderText(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())
	r.GameStarted()

	text, err := r.Text()
	require.NoError(t, err)
	assert.Contains(t, text, "uno_games_started_total 1")
	assert.Contains(t, text, "# TYPE uno_matches_active gauge")
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.MatchOpened()
	r.GameFinished("empty_hand")
	r.ScoreWrite(nil)

	text, err := r.Text()
	require.NoError(t, err)
	assert.Empty(t, text)
}
