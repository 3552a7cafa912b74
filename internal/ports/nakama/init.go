package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tech-vista/UnoGame/internal/config"
	"github.com/tech-vista/UnoGame/internal/metrics"
	"github.com/tech-vista/UnoGame/internal/ports"
	redisport "github.com/tech-vista/UnoGame/internal/ports/redis"
)

// InitModule wires RPCs, the leaderboard and the UNO match handler for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig(config.DefaultPath); err != nil {
		logger.Warn("InitModule: Could not load game config, using defaults: %v", err)
	}
	cfg := config.GetGameConfig()
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		cfg.ApplyRuntimeEnv(env)
	}

	if err := nk.LeaderboardCreate(ctx, cfg.LeaderboardID, true, cfg.SortOrder(), cfg.LeaderboardOperator, cfg.LeaderboardReset, map[string]interface{}{"game": GameName}, true); err != nil {
		return fmt.Errorf("failed to create leaderboard %s: %w", cfg.LeaderboardID, err)
	}

	sinks := ports.MultiScoreSink{NewNakamaLeaderboardAdapter(nk)}
	if cfg.RedisAddr != "" {
		mirror, err := redisport.Dial(ctx, cfg.RedisAddr, cfg.RedisKeyPrefix)
		if err != nil {
			logger.Warn("InitModule: Redis score mirror disabled: %v", err)
		} else {
			sinks = append(sinks, mirror)
			logger.Info("InitModule: Mirroring scores to redis at %s.", cfg.RedisAddr)
		}
	}

	recorder := metrics.NewRecorder(prometheus.NewRegistry())

	if err := RegisterRPCs(initializer, recorder); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameUno, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(cfg, sinks, recorder), nil
	}); err != nil {
		return err
	}

	logger.Info("UNO Go module loaded (leaderboard %s, turn limit %ds).", cfg.LeaderboardID, cfg.TurnTimeLimitSeconds)
	return nil
}
