package game

import (
	"sort"
	"strings"
	"time"
)

// Game represents one scheduled fixture between two club teams.
type Game struct {
	ID         string
	HomeTeamID string
	AwayTeamID string
	Title      string
	Venue      string
	StartsAt   time.Time
	EndsAt     *time.Time
	ArchivedAt *time.Time
}

type Side int

const (
	SideNone Side = iota
	SideHome
	SideAway
)

// SideOf reports which side of the fixture a team plays on.
func (g Game) SideOf(teamID string) Side {
	teamID = strings.TrimSpace(teamID)
	switch {
	case teamID == "":
		return SideNone
	case teamID == g.HomeTeamID:
		return SideHome
	case teamID == g.AwayTeamID:
		return SideAway
	default:
		return SideNone
	}
}

func (g Game) HasStart() bool {
	return !g.StartsAt.IsZero()
}

func (g Game) IsArchived() bool {
	return g.ArchivedAt != nil
}

// Event is one typed occurrence inside a game (goal, card, substitution...).
type Event struct {
	ID         string
	GameID     string
	TypeCode   string
	OccurredAt time.Time
	TeamID     string
	PlayerID   string
}

func (e Event) Type() EventType {
	return ParseEventType(e.TypeCode)
}

// SortEvents orders events chronologically. Events sharing a timestamp keep
// a deterministic order by id.
func SortEvents(events []Event) []Event {
	out := append([]Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.Before(out[j].OccurredAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Window bounds a game listing by start instant. Zero bounds are open.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Contains(at time.Time) bool {
	if !w.From.IsZero() && at.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && at.After(w.To) {
		return false
	}
	return true
}
