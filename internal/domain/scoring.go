package domain

// ScoreWin finishes the match with winnerID as the winner. Every other player
// scores minus their hand value; the winner scores winScore plus the sum of
// those hand values. Records are ordered winner first, then turn order.
func (s *MatchState) ScoreWin(winnerID string, winScore int) []ScoreRecord {
	winner := s.Players[winnerID]
	total := winScore
	losers := make([]ScoreRecord, 0, len(s.Order))
	for _, id := range s.Order {
		if id == winnerID {
			continue
		}
		p := s.Players[id]
		value := HandValue(p.Hand)
		total += value
		p.Score = -value
		losers = append(losers, ScoreRecord{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Score:       p.Score,
			Result:      ResultLoser,
			Reason:      ReasonEmptyHand,
		})
	}
	winner.Score = total

	records := make([]ScoreRecord, 0, len(losers)+1)
	records = append(records, ScoreRecord{
		UserID:      winner.UserID,
		DisplayName: winner.DisplayName,
		Score:       total,
		Result:      ResultWinner,
		Reason:      ReasonEmptyHand,
	})
	records = append(records, losers...)

	s.finish(winnerID, records)
	return records
}

// ScoreForfeit finishes the match in favour of the remaining player, who is
// the only one to receive a record.
func (s *MatchState) ScoreForfeit(winnerID string, forfeitScore int) []ScoreRecord {
	winner := s.Players[winnerID]
	winner.Score = forfeitScore
	records := []ScoreRecord{{
		UserID:      winner.UserID,
		DisplayName: winner.DisplayName,
		Score:       forfeitScore,
		Result:      ResultWinner,
		Reason:      ReasonOpponentLeft,
	}}
	s.finish(winnerID, records)
	return records
}

func (s *MatchState) finish(winnerID string, records []ScoreRecord) {
	s.Phase = PhaseFinished
	s.WinnerID = winnerID
	s.FinalScores = records
	s.CurrentTurn = ""
}
