package game

import "strings"

type EventType int

const (
	EventTypeOther EventType = iota
	EventTypeGoal
	EventTypeOwnGoal
	EventTypeCard
	EventTypeSubstitution
)

const (
	CodeGoal         = "goal"
	CodeOwnGoal      = "own_goal"
	CodeCard         = "card"
	CodeYellowCard   = "yellow_card"
	CodeRedCard      = "red_card"
	CodeSubstitution = "substitution"
)

// ParseEventType maps a stored event type code to its closed variant.
// Unknown codes are EventTypeOther.
func ParseEventType(code string) EventType {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case CodeGoal:
		return EventTypeGoal
	case CodeOwnGoal, "owngoal", "own-goal":
		return EventTypeOwnGoal
	case CodeCard, CodeYellowCard, CodeRedCard, "yellowred_card":
		return EventTypeCard
	case CodeSubstitution, "sub":
		return EventTypeSubstitution
	default:
		return EventTypeOther
	}
}

func (t EventType) String() string {
	switch t {
	case EventTypeGoal:
		return CodeGoal
	case EventTypeOwnGoal:
		return CodeOwnGoal
	case EventTypeCard:
		return CodeCard
	case EventTypeSubstitution:
		return CodeSubstitution
	default:
		return "other"
	}
}
