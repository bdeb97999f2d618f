package game

import "context"

// Repository exposes game read operations.
type Repository interface {
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	ListByTeams(ctx context.Context, teamIDs []string, window Window) ([]Game, error)
}

// EventRepository exposes game event read operations.
type EventRepository interface {
	ListByGame(ctx context.Context, gameID string) ([]Event, error)
}
