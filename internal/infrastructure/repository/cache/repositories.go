package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/club-manager/internal/domain/team"
	"github.com/riskibarqy/club-manager/internal/domain/video"
	basecache "github.com/riskibarqy/club-manager/internal/platform/cache"
)

// Teams and cameras change rarely and are read on every detail and overview
// request, so they are memoised in process.

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "team:id:"+teamID, func(ctx context.Context) (cachedTeamByID, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedTeamByID{}, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *TeamRepository) ListByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, "team:ids:"+idSetKey(teamIDs), func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.ListByIDs(ctx, teamIDs)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]team.Team(nil), items...), nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type CameraRepository struct {
	next  video.CameraRepository
	cache *basecache.Store
}

func NewCameraRepository(next video.CameraRepository, cache *basecache.Store) *CameraRepository {
	return &CameraRepository{next: next, cache: cache}
}

func (r *CameraRepository) ListByIDs(ctx context.Context, cameraIDs []string) ([]video.Camera, error) {
	items, err := basecache.Load(ctx, r.cache, "camera:ids:"+idSetKey(cameraIDs), func(ctx context.Context) ([]video.Camera, error) {
		items, err := r.next.ListByIDs(ctx, cameraIDs)
		if err != nil {
			return nil, err
		}
		return append([]video.Camera(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]video.Camera(nil), items...), nil
}

// idSetKey is order independent so {a,b} and {b,a} share one entry.
func idSetKey(ids []string) string {
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			normalized = append(normalized, id)
		}
	}
	sort.Strings(normalized)
	return strings.Join(normalized, ",")
}
