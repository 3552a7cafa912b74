package ports

import (
	"context"
	"errors"
)

// ScoreUpdate is a single leaderboard write for a player's final score.
type ScoreUpdate struct {
	LeaderboardID string
	UserID        string
	Username      string
	Score         int64
	Won           bool
	Metadata      map[string]interface{}
}

// ScoreSink persists final match scores. Writes are best-effort: a failure
// never changes the outcome of a match that has already been broadcast.
type ScoreSink interface {
	// RecordScore writes one player's score to the given leaderboard.
	RecordScore(ctx context.Context, update ScoreUpdate) error
}

// MultiScoreSink fans a write out to every sink and joins their errors.
type MultiScoreSink []ScoreSink

// RecordScore writes to every sink, continuing past failures.
func (m MultiScoreSink) RecordScore(ctx context.Context, update ScoreUpdate) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.RecordScore(ctx, update); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
