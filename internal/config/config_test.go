package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFillsDefaults(t *testing.T) {
	c, err := Parse([]byte(`{"win_score": 250, "tick_rate": 500}`))
	require.NoError(t, err)

	assert.Equal(t, 250, c.WinScore)
	assert.Equal(t, 15, c.TurnTimeLimitSeconds)
	assert.Equal(t, 15*time.Second, c.TurnTimeLimit())
	assert.Equal(t, 100, c.ForfeitScore)
	assert.Equal(t, 7, c.HandSize)
	assert.Equal(t, 60, c.TickRate)
	assert.Equal(t, "uno_wins", c.LeaderboardID)
	assert.Equal(t, "desc", c.SortOrder())
	assert.Equal(t, "incr", c.LeaderboardOperator)
	assert.Empty(t, c.RedisAddr)
	assert.Equal(t, "uno", c.RedisKeyPrefix)
	assert.Equal(t, 30, c.FinishedLingerSeconds)
	assert.False(t, c.WildDeclaresColor)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"win_score":`))
	assert.Error(t, err)
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv("UNO_TURN_TIME_LIMIT_SECONDS", "30")
	t.Setenv("UNO_LEADERBOARD_ID", "uno_weekly")
	t.Setenv("UNO_REDIS_ADDR", "localhost:6379")
	t.Setenv("UNO_WILD_DECLARES_COLOR", "true")

	c := Default()
	require.NoError(t, c.ApplyEnvironment())

	assert.Equal(t, 30, c.TurnTimeLimitSeconds)
	assert.Equal(t, "uno_weekly", c.LeaderboardID)
	assert.Equal(t, "localhost:6379", c.RedisAddr)
	assert.True(t, c.WildDeclaresColor)
	assert.Equal(t, 100, c.WinScore)
}

func TestApplyEnvironmentWithoutVariables(t *testing.T) {
	c := Default()
	require.NoError(t, c.ApplyEnvironment())
	assert.Equal(t, Default(), c)
}

func TestApplyRuntimeEnv(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantLimit int
		wantBoard string
	}{
		{name: "empty", env: map[string]string{}, wantLimit: 15, wantBoard: "uno_wins"},
		{
			name:      "overrides",
			env:       map[string]string{EnvTurnTimeLimit: "20", EnvLeaderboardID: "ranked"},
			wantLimit: 20,
			wantBoard: "ranked",
		},
		{
			name:      "ignores bad values",
			env:       map[string]string{EnvTurnTimeLimit: "soon", EnvLeaderboardID: ""},
			wantLimit: 15,
			wantBoard: "uno_wins",
		},
		{name: "ignores non-positive limit", env: map[string]string{EnvTurnTimeLimit: "0"}, wantLimit: 15, wantBoard: "uno_wins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.ApplyRuntimeEnv(tt.env)
			assert.Equal(t, tt.wantLimit, c.TurnTimeLimitSeconds)
			assert.Equal(t, tt.wantBoard, c.LeaderboardID)
		})
	}
}

func TestLoadGameConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uno_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"turn_time_limit_seconds": 10, "leaderboard_id": "uno_test"}`), 0o600))

	require.NoError(t, LoadGameConfig(path))

	got := GetGameConfig()
	assert.Equal(t, 10, got.TurnTimeLimitSeconds)
	assert.Equal(t, "uno_test", got.LeaderboardID)

	got.LeaderboardID = "mutated"
	assert.Equal(t, "uno_test", GetGameConfig().LeaderboardID)
}
