package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/club-manager/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byID := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		if item.Validate() != nil {
			continue
		}
		byID[item.ID] = item
	}

	return &TeamRepository{teams: byID}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[strings.TrimSpace(teamID)]
	return item, ok, nil
}

func (r *TeamRepository) ListByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(teamIDs))
	seen := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := r.teams[id]; ok {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}
