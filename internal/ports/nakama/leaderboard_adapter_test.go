package nakama

import (
	"context"
	"errors"
	"testing"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-vista/UnoGame/internal/ports"
)

type leaderboardWrite struct {
	id, ownerID, username string
	score, subscore       int64
	metadata              map[string]interface{}
}

type fakeLeaderboard struct {
	writes []leaderboardWrite
	err    error
}

func (f *fakeLeaderboard) LeaderboardRecordWrite(ctx context.Context, id, ownerID, username string, score, subscore int64, metadata map[string]interface{}, overrideOperator *int) (*api.LeaderboardRecord, error) {
	f.writes = append(f.writes, leaderboardWrite{id: id, ownerID: ownerID, username: username, score: score, subscore: subscore, metadata: metadata})
	if f.err != nil {
		return nil, f.err
	}
	return &api.LeaderboardRecord{LeaderboardId: id, OwnerId: ownerID}, nil
}

func TestNakamaLeaderboardAdapter(t *testing.T) {
	tests := []struct {
		name         string
		update       ports.ScoreUpdate
		wantSubscore int64
	}{
		{
			name:         "Winner",
			update:       ports.ScoreUpdate{LeaderboardID: "uno_wins", UserID: "a", Username: "alice", Score: 152, Won: true},
			wantSubscore: 1,
		},
		{
			name:   "Loser",
			update: ports.ScoreUpdate{LeaderboardID: "uno_wins", UserID: "b", Username: "bob", Score: -52},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			nk := &fakeLeaderboard{}
			adapter := NewNakamaLeaderboardAdapter(nk)

			require.NoError(t, adapter.RecordScore(context.Background(), test.update))
			require.Len(t, nk.writes, 1)
			w := nk.writes[0]
			assert.Equal(t, test.update.LeaderboardID, w.id)
			assert.Equal(t, test.update.UserID, w.ownerID)
			assert.Equal(t, test.update.Username, w.username)
			assert.Equal(t, test.update.Score, w.score)
			assert.Equal(t, test.wantSubscore, w.subscore)
		})
	}
}

func TestNakamaLeaderboardAdapterWrapsErrors(t *testing.T) {
	nk := &fakeLeaderboard{err: errors.New("db down")}
	err := NewNakamaLeaderboardAdapter(nk).RecordScore(context.Background(), ports.ScoreUpdate{LeaderboardID: "uno_wins", UserID: "a"})
	assert.ErrorIs(t, err, nk.err)
}
