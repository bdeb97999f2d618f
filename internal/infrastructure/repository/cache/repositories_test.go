package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/club-manager/internal/domain/team"
	"github.com/riskibarqy/club-manager/internal/domain/video"
	teammock "github.com/riskibarqy/club-manager/internal/mocks/domain/team"
	videomock "github.com/riskibarqy/club-manager/internal/mocks/domain/video"
	basecache "github.com/riskibarqy/club-manager/internal/platform/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTeamRepository_GetByIDCachesMisses(t *testing.T) {
	next := teammock.NewRepository(t)
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	next.On("GetByID", mock.Anything, "ghost").Return(team.Team{}, false, nil).Once()

	for range 3 {
		_, ok, err := repo.GetByID(context.Background(), "ghost")
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestTeamRepository_ListByIDsSharesKeyAcrossOrder(t *testing.T) {
	next := teammock.NewRepository(t)
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	teams := []team.Team{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	next.On("ListByIDs", mock.Anything, []string{"a", "b"}).Return(teams, nil).Once()

	first, err := repo.ListByIDs(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	second, err := repo.ListByIDs(context.Background(), []string{"b", " a "})
	require.NoError(t, err)
	require.Equal(t, first, second)

	second[0].Name = "mutated"
	third, err := repo.ListByIDs(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, "A", third[0].Name)
}

func TestCameraRepository_ErrorsAreNotCached(t *testing.T) {
	next := videomock.NewCameraRepository(t)
	repo := NewCameraRepository(next, basecache.NewStore(time.Minute))

	next.On("ListByIDs", mock.Anything, []string{"cam-1"}).Return(nil, errors.New("db down")).Once()
	next.On("ListByIDs", mock.Anything, []string{"cam-1"}).Return([]video.Camera{{ID: "cam-1", Name: "Main"}}, nil).Once()

	_, err := repo.ListByIDs(context.Background(), []string{"cam-1"})
	require.Error(t, err)

	got, err := repo.ListByIDs(context.Background(), []string{"cam-1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestIDSetKey(t *testing.T) {
	require.Equal(t, "a,b", idSetKey([]string{"b", "", " a"}))
	require.Equal(t, "", idSetKey(nil))
}
