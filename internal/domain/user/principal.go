package user

import "strings"

const (
	RoleAdmin   = "admin"
	RoleCoach   = "coach"
	RoleAnalyst = "analyst"
	RolePlayer  = "player"
)

// Principal is the authenticated caller resolved from an access token.
type Principal struct {
	UserID  string
	Email   string
	Roles   []string
	TeamIDs []string
}

func (p Principal) HasRole(role string) bool {
	for _, item := range p.Roles {
		if strings.EqualFold(strings.TrimSpace(item), role) {
			return true
		}
	}
	return false
}

func (p Principal) IsStaff() bool {
	return p.HasRole(RoleAdmin) || p.HasRole(RoleCoach) || p.HasRole(RoleAnalyst)
}

func (p Principal) BelongsTo(teamID string) bool {
	if teamID == "" {
		return false
	}
	for _, item := range p.TeamIDs {
		if item == teamID {
			return true
		}
	}
	return false
}
