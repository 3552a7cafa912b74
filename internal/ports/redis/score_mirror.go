// Package redis mirrors final UNO scores into Redis sorted sets.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tech-vista/UnoGame/internal/ports"
)

// ScoreMirror implements ports.ScoreSink on top of a Redis client.
//
// For each leaderboard it keeps a sorted set of cumulative scores, a hash of
// display names, and a per-player stats hash.
type ScoreMirror struct {
	client goredis.UniversalClient
	prefix string
}

var _ ports.ScoreSink = (*ScoreMirror)(nil)

// NewScoreMirror creates a mirror writing keys under prefix.
func NewScoreMirror(client goredis.UniversalClient, prefix string) *ScoreMirror {
	return &ScoreMirror{client: client, prefix: prefix}
}

// Dial connects to addr and returns a mirror over the new client.
func Dial(ctx context.Context, addr, prefix string) (*ScoreMirror, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return NewScoreMirror(client, prefix), nil
}

// RecordScore applies one player's result atomically.
func (m *ScoreMirror) RecordScore(ctx context.Context, update ports.ScoreUpdate) error {
	statsKey := m.StatsKey(update.LeaderboardID, update.UserID)
	_, err := m.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZIncrBy(ctx, m.LeaderboardKey(update.LeaderboardID), float64(update.Score), update.UserID)
		if update.Username != "" {
			pipe.HSet(ctx, m.NamesKey(update.LeaderboardID), update.UserID, update.Username)
		}
		pipe.HIncrBy(ctx, statsKey, "games", 1)
		if update.Won {
			pipe.HIncrBy(ctx, statsKey, "wins", 1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to mirror score for user %s: %w", update.UserID, err)
	}
	return nil
}

// Close releases the underlying client.
func (m *ScoreMirror) Close() error {
	return m.client.Close()
}

func (m *ScoreMirror) LeaderboardKey(leaderboardID string) string {
	return m.prefix + ":leaderboard:" + leaderboardID
}

func (m *ScoreMirror) NamesKey(leaderboardID string) string {
	return m.prefix + ":names:" + leaderboardID
}

func (m *ScoreMirror) StatsKey(leaderboardID, userID string) string {
	return m.prefix + ":stats:" + leaderboardID + ":" + userID
}
