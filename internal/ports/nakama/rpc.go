package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/tech-vista/UnoGame/internal/metrics"
)

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer, recorder *metrics.Recorder) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcMetrics, newMetricsRPC(recorder))
}

// newMetricsRPC serves the recorder's metrics in the Prometheus text format.
func newMetricsRPC(recorder *metrics.Recorder) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		text, err := recorder.Text()
		if err != nil {
			logger.Error("Metrics: %v", err)
			return "", runtime.NewError("failed to render metrics", 13)
		}
		return text, nil
	}
}
