package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-vista/UnoGame/internal/ports"
)

// recordingHook captures pipelined commands without touching the network.
type recordingHook struct {
	commands []string
	err      error
}

func (h *recordingHook) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial disabled in tests")
	}
}

func (h *recordingHook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		h.commands = append(h.commands, fmt.Sprintln(cmd.Args()...))
		return h.err
	}
}

func (h *recordingHook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		for _, cmd := range cmds {
			switch cmd.Name() {
			case "multi", "exec":
				continue
			}
			h.commands = append(h.commands, fmt.Sprintln(cmd.Args()...))
		}
		return h.err
	}
}

func newTestMirror(t *testing.T) (*ScoreMirror, *recordingHook) {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	hook := &recordingHook{}
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })
	return NewScoreMirror(client, "uno"), hook
}

func TestKeys(t *testing.T) {
	m := NewScoreMirror(nil, "uno")
	assert.Equal(t, "uno:leaderboard:uno_wins", m.LeaderboardKey("uno_wins"))
	assert.Equal(t, "uno:names:uno_wins", m.NamesKey("uno_wins"))
	assert.Equal(t, "uno:stats:uno_wins:u1", m.StatsKey("uno_wins", "u1"))
}

func TestRecordScoreWinner(t *testing.T) {
	m, hook := newTestMirror(t)

	err := m.RecordScore(context.Background(), ports.ScoreUpdate{
		LeaderboardID: "uno_wins",
		UserID:        "u1",
		Username:      "alice",
		Score:         152,
		Won:           true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"zincrby uno:leaderboard:uno_wins 152 u1\n",
		"hset uno:names:uno_wins u1 alice\n",
		"hincrby uno:stats:uno_wins:u1 games 1\n",
		"hincrby uno:stats:uno_wins:u1 wins 1\n",
	}, hook.commands)
}

func TestRecordScoreLoserWithoutName(t *testing.T) {
	m, hook := newTestMirror(t)

	err := m.RecordScore(context.Background(), ports.ScoreUpdate{
		LeaderboardID: "uno_wins",
		UserID:        "u2",
		Score:         -52,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"zincrby uno:leaderboard:uno_wins -52 u2\n",
		"hincrby uno:stats:uno_wins:u2 games 1\n",
	}, hook.commands)
}

func TestRecordScoreWrapsErrors(t *testing.T) {
	m, hook := newTestMirror(t)
	hook.err = errors.New("connection reset")

	err := m.RecordScore(context.Background(), ports.ScoreUpdate{LeaderboardID: "uno_wins", UserID: "u1", Score: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, hook.err)
	assert.Contains(t, err.Error(), "u1")
}
