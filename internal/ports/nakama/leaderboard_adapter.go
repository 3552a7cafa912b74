package nakama

import (
	"context"
	"fmt"

	"github.com/heroiclabs/nakama-common/api"

	"github.com/tech-vista/UnoGame/internal/ports"
)

// LeaderboardWriter is the slice of runtime.NakamaModule the adapter needs.
type LeaderboardWriter interface {
	LeaderboardRecordWrite(ctx context.Context, id, ownerID, username string, score, subscore int64, metadata map[string]interface{}, overrideOperator *int) (*api.LeaderboardRecord, error)
}

// NakamaLeaderboardAdapter implements ports.ScoreSink using Nakama leaderboards.
type NakamaLeaderboardAdapter struct {
	nk LeaderboardWriter
}

// NewNakamaLeaderboardAdapter creates a new leaderboard adapter.
func NewNakamaLeaderboardAdapter(nk LeaderboardWriter) *NakamaLeaderboardAdapter {
	return &NakamaLeaderboardAdapter{
		nk: nk,
	}
}

// RecordScore writes one final score with the leaderboard's configured operator.
func (a *NakamaLeaderboardAdapter) RecordScore(ctx context.Context, update ports.ScoreUpdate) error {
	var subscore int64
	if update.Won {
		subscore = 1
	}
	_, err := a.nk.LeaderboardRecordWrite(ctx, update.LeaderboardID, update.UserID, update.Username, update.Score, subscore, update.Metadata, nil)
	if err != nil {
		return fmt.Errorf("failed to write leaderboard %s record for user %s: %w", update.LeaderboardID, update.UserID, err)
	}
	return nil
}
