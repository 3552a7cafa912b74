package app

// Error codes carried by play_card_error notifications.
const (
	ErrorCodeOutOfTurn    = "out_of_turn"
	ErrorCodeCardNotOwned = "card_not_owned"
	ErrorCodeIllegalPlay  = "illegal_play"
	ErrorCodeNotPlaying   = "not_playing"
	ErrorCodeUnknown      = "unknown_player"
	ErrorCodeInternal     = "internal"
)
