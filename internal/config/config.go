package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joeshaw/envdecode"
)

// DefaultPath is where the Nakama module looks for the game configuration.
const DefaultPath = "data/uno_config.json"

const (
	defaultTurnTimeLimitSeconds  = 15
	defaultWinScore              = 100
	defaultForfeitScore          = 100
	defaultHandSize              = 7
	defaultTickRate              = 1
	maxTickRate                  = 60
	defaultLeaderboardID         = "uno_wins"
	defaultLeaderboardSort       = "desc"
	defaultLeaderboardOperator   = "incr"
	defaultRedisKeyPrefix        = "uno"
	defaultFinishedLingerSeconds = 30
)

// Runtime env keys read from the Nakama server configuration.
const (
	EnvTurnTimeLimit = "uno_turn_time_limit_sec"
	EnvLeaderboardID = "uno_leaderboard_id"
	EnvRedisAddr     = "uno_redis_addr"
)

// GameConfig holds the tunable rules, leaderboard and infrastructure settings of an UNO match.
type GameConfig struct {
	TurnTimeLimitSeconds int `json:"turn_time_limit_seconds" env:"UNO_TURN_TIME_LIMIT_SECONDS"`
	WinScore             int `json:"win_score" env:"UNO_WIN_SCORE"`
	ForfeitScore         int `json:"forfeit_score" env:"UNO_FORFEIT_SCORE"`
	HandSize             int `json:"hand_size" env:"UNO_HAND_SIZE"`
	// TickRate is the number of match loop ticks per second.
	TickRate int `json:"tick_rate" env:"UNO_TICK_RATE"`
	// WildDeclaresColor lets the player of a wild name the color it stands for.
	// Off, a wild on top only accepts another wild.
	WildDeclaresColor bool `json:"wild_declares_color" env:"UNO_WILD_DECLARES_COLOR"`

	LeaderboardID       string `json:"leaderboard_id" env:"UNO_LEADERBOARD_ID"`
	LeaderboardSort     string `json:"leaderboard_sort" env:"UNO_LEADERBOARD_SORT"`
	LeaderboardOperator string `json:"leaderboard_operator" env:"UNO_LEADERBOARD_OPERATOR"`
	LeaderboardReset    string `json:"leaderboard_reset" env:"UNO_LEADERBOARD_RESET"`

	// RedisAddr enables the score mirror when set.
	RedisAddr      string `json:"redis_addr" env:"UNO_REDIS_ADDR"`
	RedisKeyPrefix string `json:"redis_key_prefix" env:"UNO_REDIS_KEY_PREFIX"`

	// FinishedLingerSeconds is how long a finished match stays up before terminating.
	FinishedLingerSeconds int `json:"finished_linger_seconds" env:"UNO_FINISHED_LINGER_SECONDS"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns a configuration with every field at its default.
func Default() *GameConfig {
	c := &GameConfig{}
	c.applyDefaults()
	return c
}

// Parse decodes a JSON configuration and fills unset fields with defaults.
func Parse(data []byte) (*GameConfig, error) {
	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	c.applyDefaults()
	return &c, nil
}

// LoadGameConfig loads the game configuration from the given path and applies
// UNO_* process environment overrides.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := Parse(data)
		if err != nil {
			loadErr = err
			return
		}
		if err := c.ApplyEnvironment(); err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// GetGameConfig returns a copy of the global game configuration, or the
// defaults when nothing has been loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return Default()
	}
	c := *cfg
	return &c
}

// ApplyEnvironment overrides fields from UNO_* process environment variables.
func (c *GameConfig) ApplyEnvironment() error {
	if err := envdecode.Decode(c); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("failed to decode game config environment: %w", err)
	}
	c.applyDefaults()
	return nil
}

// ApplyRuntimeEnv overrides fields from the Nakama runtime environment.
// Unparseable values are ignored.
func (c *GameConfig) ApplyRuntimeEnv(env map[string]string) {
	if val, ok := env[EnvTurnTimeLimit]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			c.TurnTimeLimitSeconds = i
		}
	}
	if val, ok := env[EnvLeaderboardID]; ok && val != "" {
		c.LeaderboardID = val
	}
	if val, ok := env[EnvRedisAddr]; ok {
		c.RedisAddr = val
	}
}

// TurnTimeLimit returns the per-turn limit as a duration.
func (c *GameConfig) TurnTimeLimit() time.Duration {
	return time.Duration(c.TurnTimeLimitSeconds) * time.Second
}

// SortOrder returns the leaderboard sort order, "asc" or "desc".
func (c *GameConfig) SortOrder() string {
	if c.LeaderboardSort == "asc" {
		return "asc"
	}
	return "desc"
}

func (c *GameConfig) applyDefaults() {
	if c.TurnTimeLimitSeconds <= 0 {
		c.TurnTimeLimitSeconds = defaultTurnTimeLimitSeconds
	}
	if c.WinScore <= 0 {
		c.WinScore = defaultWinScore
	}
	if c.ForfeitScore <= 0 {
		c.ForfeitScore = defaultForfeitScore
	}
	if c.HandSize <= 0 {
		c.HandSize = defaultHandSize
	}
	if c.TickRate <= 0 {
		c.TickRate = defaultTickRate
	}
	if c.TickRate > maxTickRate {
		c.TickRate = maxTickRate
	}
	if c.LeaderboardID == "" {
		c.LeaderboardID = defaultLeaderboardID
	}
	if c.LeaderboardSort == "" {
		c.LeaderboardSort = defaultLeaderboardSort
	}
	if c.LeaderboardOperator == "" {
		c.LeaderboardOperator = defaultLeaderboardOperator
	}
	if c.RedisKeyPrefix == "" {
		c.RedisKeyPrefix = defaultRedisKeyPrefix
	}
	if c.FinishedLingerSeconds <= 0 {
		c.FinishedLingerSeconds = defaultFinishedLingerSeconds
	}
}
