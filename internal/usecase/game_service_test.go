package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/club-manager/internal/domain/game"
	"github.com/riskibarqy/club-manager/internal/domain/team"
	"github.com/riskibarqy/club-manager/internal/domain/user"
	"github.com/riskibarqy/club-manager/internal/domain/video"
	gamemock "github.com/riskibarqy/club-manager/internal/mocks/domain/game"
	teammock "github.com/riskibarqy/club-manager/internal/mocks/domain/team"
	videomock "github.com/riskibarqy/club-manager/internal/mocks/domain/video"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubAccessPolicy struct {
	denyGame     bool
	hiddenVideos map[string]bool
	videoChecks  map[string]int
}

func (p *stubAccessPolicy) CanViewGame(context.Context, user.Principal, game.Game) bool {
	return !p.denyGame
}

func (p *stubAccessPolicy) CanViewVideo(_ context.Context, _ user.Principal, _ game.Game, clip video.Video) bool {
	if p.videoChecks == nil {
		p.videoChecks = make(map[string]int)
	}
	p.videoChecks[clip.ID]++
	return !p.hiddenVideos[clip.ID]
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type gameServiceDeps struct {
	games   *gamemock.Repository
	events  *gamemock.EventRepository
	videos  *videomock.Repository
	cameras *videomock.CameraRepository
	teams   *teammock.Repository
	policy  *stubAccessPolicy
}

func newTestGameService(t *testing.T, now time.Time) (*GameService, gameServiceDeps) {
	t.Helper()

	deps := gameServiceDeps{
		games:   gamemock.NewRepository(t),
		events:  gamemock.NewEventRepository(t),
		videos:  videomock.NewRepository(t),
		cameras: videomock.NewCameraRepository(t),
		teams:   teammock.NewRepository(t),
		policy:  &stubAccessPolicy{},
	}
	svc := NewGameService(
		deps.games,
		deps.events,
		deps.videos,
		deps.cameras,
		deps.teams,
		deps.policy,
		fixedClock{now: now},
		DefaultGameServiceConfig(),
		nil,
	)
	return svc, deps
}

func TestGameService_GetDetail_LinksAndScore(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, time.March, 7, 15, 0, 0, 0, time.UTC)
	svc, deps := newTestGameService(t, kickoff.Add(3*time.Hour))

	item := game.Game{ID: "g-1", HomeTeamID: "home", AwayTeamID: "away", StartsAt: kickoff}
	events := []game.Event{
		{ID: "own", GameID: "g-1", TypeCode: game.CodeOwnGoal, TeamID: "away", OccurredAt: kickoff.Add(3000 * time.Second)},
		{ID: "goal", GameID: "g-1", TypeCode: game.CodeGoal, TeamID: "home", OccurredAt: kickoff.Add(2750 * time.Second)},
		{ID: "card", GameID: "g-1", TypeCode: game.CodeYellowCard, TeamID: "away", OccurredAt: kickoff.Add(600 * time.Second)},
	}
	clips := []video.Video{
		{ID: "a2", GameID: "g-1", CameraID: "cam-a", SortIndex: 2, Length: 2700, URL: "https://cdn/a2?v=1"},
		{ID: "a1", GameID: "g-1", CameraID: "cam-a", SortIndex: 1, Length: 2700, URL: "https://cdn/a1?v=1"},
		{ID: "b1", GameID: "g-1", CameraID: "cam-b", SortIndex: 1, Length: 5400, URL: "https://cdn/b1?v=1"},
	}
	deps.policy.hiddenVideos = map[string]bool{"b1": true}

	deps.games.On("GetByID", mock.Anything, "g-1").Return(item, true, nil).Once()
	deps.events.On("ListByGame", mock.Anything, "g-1").Return(events, nil).Once()
	deps.videos.On("ListByGame", mock.Anything, "g-1").Return(clips, nil).Once()
	deps.teams.On("ListByIDs", mock.Anything, []string{"home", "away"}).
		Return([]team.Team{{ID: "home", Name: "FC Home"}, {ID: "away", Name: "Away United"}}, nil).
		Once()
	deps.cameras.On("ListByIDs", mock.Anything, []string{"cam-a"}).
		Return([]video.Camera{{ID: "cam-a", Name: "Main stand"}}, nil).
		Once()

	got, err := svc.GetDetail(context.Background(), user.Principal{UserID: "u1"}, " g-1 ")
	require.NoError(t, err)

	require.Equal(t, game.Score{Home: 2, Away: 0}, got.Score)
	require.Equal(t, "FC Home", got.HomeTeam.Name)
	require.Equal(t, "Away United", got.AwayTeam.Name)

	require.Len(t, got.Events, 3)
	require.Equal(t, "card", got.Events[0].Event.ID)
	require.Equal(t, "goal", got.Events[1].Event.ID)
	require.Equal(t, "own", got.Events[2].Event.ID)
	require.Equal(t, game.Score{Home: 1}, got.Events[1].ScoreAfter)
	require.Equal(t, game.Score{Home: 2}, got.Events[2].ScoreAfter)
	require.Equal(t, int64(2750), got.Events[1].MatchSecond)

	require.Equal(t, []string{"https://cdn/a1?v=1&t=540s"}, got.Events[0].Links["cam-a"])
	require.Equal(t, []string{"https://cdn/a2?v=1&t=0s"}, got.Events[1].Links["cam-a"])
	require.Equal(t, []string{"https://cdn/a2?v=1&t=240s"}, got.Events[2].Links["cam-a"])
	for _, event := range got.Events {
		_, hasHidden := event.Links["cam-b"]
		require.False(t, hasHidden, "hidden camera must not produce links")
	}

	require.Len(t, got.Cameras, 1)
	require.Equal(t, "Main stand", got.Cameras[0].Camera.Name)
	require.Equal(t, int64(2700), got.Cameras[0].Track.Entries[1].Offset)

	for _, clip := range clips {
		require.Equal(t, 1, deps.policy.videoChecks[clip.ID], "policy consulted once per clip")
	}
}

func TestGameService_GetDetail_NoKickoffSkipsLinks(t *testing.T) {
	t.Parallel()

	svc, deps := newTestGameService(t, time.Date(2026, time.March, 7, 18, 0, 0, 0, time.UTC))
	item := game.Game{ID: "g-2", HomeTeamID: "home", AwayTeamID: "away"}

	deps.games.On("GetByID", mock.Anything, "g-2").Return(item, true, nil).Once()
	deps.events.On("ListByGame", mock.Anything, "g-2").
		Return([]game.Event{{ID: "e1", TypeCode: game.CodeGoal, TeamID: "away", OccurredAt: time.Date(2026, time.March, 7, 15, 10, 0, 0, time.UTC)}}, nil).
		Once()
	deps.videos.On("ListByGame", mock.Anything, "g-2").
		Return([]video.Video{{ID: "v1", CameraID: "cam", SortIndex: 1, Length: 5400, URL: "u?x"}}, nil).
		Once()
	deps.teams.On("ListByIDs", mock.Anything, []string{"home", "away"}).Return([]team.Team{}, nil).Once()
	deps.cameras.On("ListByIDs", mock.Anything, []string{"cam"}).Return([]video.Camera{}, nil).Once()

	got, err := svc.GetDetail(context.Background(), user.Principal{UserID: "u1"}, "g-2")
	require.NoError(t, err)
	require.Equal(t, game.Score{Away: 1}, got.Score)
	require.Len(t, got.Events, 1)
	require.Nil(t, got.Events[0].Links)
	require.Equal(t, "home", got.HomeTeam.ID)
	require.Equal(t, "cam", got.Cameras[0].Camera.ID)
}

func TestGameService_GetDetail_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty id", func(t *testing.T) {
		svc, _ := newTestGameService(t, time.Now())
		_, err := svc.GetDetail(context.Background(), user.Principal{}, " ")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc, deps := newTestGameService(t, time.Now())
		deps.games.On("GetByID", mock.Anything, "missing").Return(game.Game{}, false, nil).Once()

		_, err := svc.GetDetail(context.Background(), user.Principal{}, "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		svc, deps := newTestGameService(t, time.Now())
		deps.policy.denyGame = true
		deps.games.On("GetByID", mock.Anything, "g-1").Return(game.Game{ID: "g-1"}, true, nil).Once()

		_, err := svc.GetDetail(context.Background(), user.Principal{}, "g-1")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("dependency failure", func(t *testing.T) {
		svc, deps := newTestGameService(t, time.Now())
		boom := errors.New("boom")
		deps.games.On("GetByID", mock.Anything, "g-1").Return(game.Game{ID: "g-1"}, true, nil).Once()
		deps.events.On("ListByGame", mock.Anything, "g-1").Return(nil, boom).Maybe()
		deps.videos.On("ListByGame", mock.Anything, "g-1").Return([]video.Video{}, nil).Maybe()
		deps.teams.On("ListByIDs", mock.Anything, mock.Anything).Return([]team.Team{}, nil).Maybe()

		_, err := svc.GetDetail(context.Background(), user.Principal{}, "g-1")
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped dependency error, got %v", err)
		}
	})
}

func TestGameService_ListEvents_RunningScore(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, time.March, 7, 15, 0, 0, 0, time.UTC)
	svc, deps := newTestGameService(t, kickoff)
	item := game.Game{ID: "g-1", HomeTeamID: "home", AwayTeamID: "away", StartsAt: kickoff}

	deps.games.On("GetByID", mock.Anything, "g-1").Return(item, true, nil).Once()
	deps.events.On("ListByGame", mock.Anything, "g-1").Return([]game.Event{
		{ID: "e3", TypeCode: game.CodeOwnGoal, TeamID: "home", OccurredAt: kickoff.Add(80 * time.Minute)},
		{ID: "e1", TypeCode: game.CodeGoal, TeamID: "home", OccurredAt: kickoff.Add(10 * time.Minute)},
		{ID: "e2", TypeCode: game.CodeGoal, TeamID: "away", OccurredAt: kickoff.Add(40 * time.Minute)},
	}, nil).Once()

	got, err := svc.ListEvents(context.Background(), user.Principal{}, "g-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, game.Score{Home: 1}, got[0].ScoreAfter)
	require.Equal(t, game.Score{Home: 1, Away: 1}, got[1].ScoreAfter)
	require.Equal(t, game.Score{Home: 1, Away: 2}, got[2].ScoreAfter)
	require.Equal(t, int64(40*60), got[1].MatchSecond)
}

func TestGameService_Overview_ClassifiesAndScoresFinished(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 16, 0, 0, 0, time.UTC)
	svc, deps := newTestGameService(t, now)
	ends := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	games := []game.Game{
		{ID: "live", HomeTeamID: "u19", AwayTeamID: "opp-1", StartsAt: now.Add(-30 * time.Minute), EndsAt: ends(90 * time.Minute)},
		{ID: "next", HomeTeamID: "opp-2", AwayTeamID: "u19", StartsAt: now.Add(48 * time.Hour)},
		{ID: "done", HomeTeamID: "u19", AwayTeamID: "opp-3", StartsAt: now.Add(-72 * time.Hour), EndsAt: ends(-70 * time.Hour)},
		{ID: "open-ended", HomeTeamID: "opp-4", AwayTeamID: "u19", StartsAt: now.Add(-24 * time.Hour)},
		{ID: "unscheduled", HomeTeamID: "u19", AwayTeamID: "opp-5"},
	}
	wantWindow := game.Window{From: now.Add(-30 * 24 * time.Hour), To: now.Add(30 * 24 * time.Hour)}

	deps.games.On("ListByTeams", mock.Anything, []string{"u19"}, wantWindow).Return(games, nil).Once()
	deps.events.On("ListByGame", mock.Anything, "done").Return([]game.Event{
		{ID: "d1", TypeCode: game.CodeGoal, TeamID: "u19"},
		{ID: "d2", TypeCode: game.CodeOwnGoal, TeamID: "u19"},
		{ID: "d3", TypeCode: game.CodeGoal, TeamID: "opp-3"},
	}, nil).Once()
	deps.events.On("ListByGame", mock.Anything, "open-ended").Return([]game.Event{
		{ID: "o1", TypeCode: game.CodeGoal, TeamID: "u19"},
	}, nil).Once()
	deps.teams.On("ListByIDs", mock.Anything, mock.Anything).Return([]team.Team{{ID: "u19", Name: "U19"}}, nil).Once()

	got, err := svc.Overview(context.Background(), user.Principal{UserID: "coach", TeamIDs: []string{"u19", "u19"}}, OverviewFilter{})
	require.NoError(t, err)

	require.Len(t, got.Running, 1)
	require.Equal(t, "live", got.Running[0].ID)
	require.Len(t, got.Upcoming, 1)
	require.Equal(t, "next", got.Upcoming[0].ID)
	require.Len(t, got.Finished, 2)
	require.Equal(t, "done", got.Finished[0].Game.ID)
	require.Equal(t, game.Score{Home: 1, Away: 2}, got.Finished[0].Score)
	require.Equal(t, "open-ended", got.Finished[1].Game.ID)
	require.Equal(t, game.Score{Home: 0, Away: 1}, got.Finished[1].Score)
	require.Equal(t, "U19", got.Teams["u19"].Name)
	require.Equal(t, now, got.Now)
}

func TestGameService_Overview_NoTeams(t *testing.T) {
	t.Parallel()

	svc, _ := newTestGameService(t, time.Now())
	got, err := svc.Overview(context.Background(), user.Principal{UserID: "fan"}, OverviewFilter{})
	require.NoError(t, err)
	require.Empty(t, got.Running)
	require.Empty(t, got.Upcoming)
	require.Empty(t, got.Finished)
}

func TestGameService_Overview_TeamAccess(t *testing.T) {
	t.Parallel()

	t.Run("non member is forbidden", func(t *testing.T) {
		svc, deps := newTestGameService(t, time.Now())
		deps.teams.On("GetByID", mock.Anything, "first-team").Return(team.Team{ID: "first-team"}, true, nil).Once()

		_, err := svc.Overview(context.Background(), user.Principal{UserID: "p1", Roles: []string{user.RolePlayer}}, OverviewFilter{TeamID: "first-team"})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("unknown team", func(t *testing.T) {
		svc, deps := newTestGameService(t, time.Now())
		deps.teams.On("GetByID", mock.Anything, "ghost").Return(team.Team{}, false, nil).Once()

		_, err := svc.Overview(context.Background(), user.Principal{UserID: "p1"}, OverviewFilter{TeamID: "ghost"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("inverted window", func(t *testing.T) {
		now := time.Date(2026, time.March, 7, 16, 0, 0, 0, time.UTC)
		svc, _ := newTestGameService(t, now)

		_, err := svc.Overview(context.Background(), user.Principal{TeamIDs: []string{"u19"}}, OverviewFilter{From: now, To: now.Add(-time.Hour)})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
