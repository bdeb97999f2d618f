package game

import "time"

type Phase string

const (
	PhaseRunning  Phase = "running"
	PhaseUpcoming Phase = "upcoming"
	PhaseFinished Phase = "finished"
)

// PhaseAt evaluates a game against now. The second return value is false
// when the game has no start instant and cannot be classified.
//
// A game without an end instant whose start has passed is finished.
func PhaseAt(g Game, now time.Time) (Phase, bool) {
	if !g.HasStart() {
		return "", false
	}
	if g.StartsAt.After(now) {
		return PhaseUpcoming, true
	}
	if g.EndsAt != nil && !now.After(*g.EndsAt) {
		return PhaseRunning, true
	}
	return PhaseFinished, true
}

type Classification struct {
	Running  []Game
	Upcoming []Game
	Finished []Game
}

// Classify buckets each game exactly once. Input order is kept inside a bucket.
func Classify(games []Game, now time.Time) Classification {
	out := Classification{
		Running:  make([]Game, 0),
		Upcoming: make([]Game, 0),
		Finished: make([]Game, 0),
	}
	for _, item := range games {
		phase, ok := PhaseAt(item, now)
		if !ok {
			continue
		}
		switch phase {
		case PhaseRunning:
			out.Running = append(out.Running, item)
		case PhaseUpcoming:
			out.Upcoming = append(out.Upcoming, item)
		case PhaseFinished:
			out.Finished = append(out.Finished, item)
		}
	}
	return out
}
