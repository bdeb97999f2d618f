package game

// Score is a derived home/away scoreline. It is never persisted.
type Score struct {
	Home int
	Away int
}

// AccumulateScore folds the event set into a scoreline. A goal credits the
// scoring side, an own goal credits the opponent. The result does not depend
// on event order.
func AccumulateScore(g Game, events []Event) Score {
	var score Score
	for _, event := range events {
		score = score.apply(g, event)
	}
	return score
}

// RunningScores returns the scoreline after each event, in the given order.
func RunningScores(g Game, events []Event) []Score {
	out := make([]Score, 0, len(events))
	var score Score
	for _, event := range events {
		score = score.apply(g, event)
		out = append(out, score)
	}
	return out
}

func (s Score) apply(g Game, event Event) Score {
	side := g.SideOf(event.TeamID)
	if side == SideNone {
		return s
	}

	switch event.Type() {
	case EventTypeGoal:
		return s.credit(side)
	case EventTypeOwnGoal:
		return s.credit(side.Opponent())
	case EventTypeCard, EventTypeSubstitution, EventTypeOther:
		return s
	}
	return s
}

func (s Score) credit(side Side) Score {
	switch side {
	case SideHome:
		s.Home++
	case SideAway:
		s.Away++
	}
	return s
}

func (s Side) Opponent() Side {
	switch s {
	case SideHome:
		return SideAway
	case SideAway:
		return SideHome
	default:
		return SideNone
	}
}
