package nakama

import "time"

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create an open UNO match.
	RpcQuickMatch = "uno_quick_match"

	// RpcMetrics returns the engine's Prometheus metrics in text format.
	RpcMetrics = "uno_metrics"

	// MatchNameUno is the authoritative match handler name registered with Nakama.
	MatchNameUno = "uno_match"

	// GameName is stored in the match label so listings can filter on it.
	GameName = "uno"
)

// OpCodeGame carries every client and server message as JSON tagged by "type".
const OpCodeGame int64 = 1

// Join attempt rejection reasons.
const (
	RejectMatchFull       = "match_full"
	RejectMatchInProgress = "match_in_progress"
)

// JoinMetadataDisplayName is the join metadata key clients use to set their display name.
const JoinMetadataDisplayName = "display_name"

const scoreWriteTimeout = 5 * time.Second
