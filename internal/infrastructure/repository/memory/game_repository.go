package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/club-manager/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	games []game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := append([]game.Game(nil), games...)
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].StartsAt.Equal(items[j].StartsAt) {
			return items[i].StartsAt.Before(items[j].StartsAt)
		}
		return items[i].ID < items[j].ID
	})

	return &GameRepository{games: items}
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gameID = strings.TrimSpace(gameID)
	for _, item := range r.games {
		if item.ID == gameID {
			return item, true, nil
		}
	}

	return game.Game{}, false, nil
}

func (r *GameRepository) ListByTeams(_ context.Context, teamIDs []string, window game.Window) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if id = strings.TrimSpace(id); id != "" {
			wanted[id] = struct{}{}
		}
	}

	out := make([]game.Game, 0)
	if len(wanted) == 0 {
		return out, nil
	}
	bounded := !window.From.IsZero() || !window.To.IsZero()
	for _, item := range r.games {
		if item.IsArchived() {
			continue
		}
		_, home := wanted[item.HomeTeamID]
		_, away := wanted[item.AwayTeamID]
		if !home && !away {
			continue
		}
		if bounded && (!item.HasStart() || !window.Contains(item.StartsAt)) {
			continue
		}
		out = append(out, item)
	}

	return out, nil
}

type GameEventRepository struct {
	mu     sync.RWMutex
	events map[string][]game.Event
}

func NewGameEventRepository(events []game.Event) *GameEventRepository {
	byGame := make(map[string][]game.Event)
	for _, item := range events {
		byGame[item.GameID] = append(byGame[item.GameID], item)
	}
	for gameID, items := range byGame {
		byGame[gameID] = game.SortEvents(items)
	}

	return &GameEventRepository{events: byGame}
}

func (r *GameEventRepository) ListByGame(_ context.Context, gameID string) ([]game.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.events[strings.TrimSpace(gameID)]
	return append(make([]game.Event, 0, len(items)), items...), nil
}
