package nakama

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tech-vista/UnoGame/internal/domain"
)

// Match label keys queried by the quick match RPC.
const (
	MatchLabelKeyOpen    = "open"
	MatchLabelKeyGame    = "game"
	MatchLabelKeyPhase   = "phase"
	MatchLabelKeyPlayers = "players"
)

// matchLabel renders the listing label for a match. A match is open only while
// it is waiting with a free seat.
func matchLabel(game *domain.MatchState) (string, error) {
	open := game.Phase == domain.PhaseWaiting && len(game.Players) < domain.MaxPlayers
	label, err := structpb.NewStruct(map[string]interface{}{
		MatchLabelKeyOpen:    open,
		MatchLabelKeyGame:    GameName,
		MatchLabelKeyPhase:   string(game.Phase),
		MatchLabelKeyPlayers: len(game.Players),
	})
	if err != nil {
		return "", err
	}
	labelBytes, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", err
	}
	return string(labelBytes), nil
}
