package team

import "fmt"

// Team is one squad of the club (first team, U19, women...) or an opponent.
type Team struct {
	ID       string
	ClubID   string
	Name     string
	Short    string
	Opponent bool
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
