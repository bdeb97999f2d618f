package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/club-manager/internal/domain/user"
	"github.com/riskibarqy/club-manager/internal/infrastructure/authz"
	"github.com/riskibarqy/club-manager/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/riskibarqy/club-manager/internal/usecase"
	"github.com/stretchr/testify/require"
)

var testRef = time.Date(2026, time.March, 7, 16, 0, 0, 0, time.UTC)

type fakeVerifier map[string]user.Principal

func (f fakeVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := f[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	data := memory.Seed(testRef)
	service := usecase.NewGameService(
		memory.NewGameRepository(data.Games),
		memory.NewGameEventRepository(data.Events),
		memory.NewVideoRepository(data.Videos),
		memory.NewCameraRepository(data.Cameras),
		memory.NewTeamRepository(data.Teams),
		authz.NewTeamPolicy(),
		fixedClock{now: testRef},
		usecase.DefaultGameServiceConfig(),
		logging.NewNop(),
	)

	verifier := fakeVerifier{
		"player-token": {UserID: "u-player", Roles: []string{user.RolePlayer}, TeamIDs: []string{memory.TeamIDFirstTeam}},
		"coach-token":  {UserID: "u-coach", Roles: []string{user.RoleCoach}, TeamIDs: []string{memory.TeamIDFirstTeam, memory.TeamIDU19}},
		"u19-token":    {UserID: "u-u19", Roles: []string{user.RolePlayer}, TeamIDs: []string{memory.TeamIDU19}},
	}

	return NewRouter(NewHandler(service, logging.NewNop()), verifier, logging.NewNop(), true, []string{"*"})
}

func doGet(t *testing.T, router http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetGame_PlayerSeesClubClipsOnly(t *testing.T) {
	router := newTestRouter(t)

	rec := doGet(t, router, "/v1/games/"+memory.GameIDFinished, "player-token")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))

	body := decode[gameDetailDTO](t, rec)
	require.Equal(t, "2.0", body.APIVersion)
	require.Equal(t, scoreDTO{Home: 2, Away: 1}, body.Data.Score)
	require.Equal(t, "Rovers", body.Data.Game.AwayTeam.Name)
	require.Len(t, body.Data.Cameras, 1)
	require.Equal(t, "cam-main", body.Data.Cameras[0].ID)
	require.EqualValues(t, 6300, body.Data.Cameras[0].DurationSeconds)

	require.Len(t, body.Data.Events, 5)
	first := body.Data.Events[0]
	require.Equal(t, "ev-f-1", first.ID)
	require.Equal(t, "goal", first.Type)
	require.EqualValues(t, 720, first.MatchSecond)
	require.Equal(t, scoreDTO{Home: 1, Away: 0}, first.Score)
	require.Equal(t, map[string][]string{
		"cam-main": {"https://video.example.com/watch?v=f-main-1&t=660s"},
	}, first.Links)

	late := body.Data.Events[3]
	require.Equal(t, "ev-f-4", late.ID)
	require.Equal(t, []string{"https://video.example.com/watch?v=f-main-2&t=1920s"}, late.Links["cam-main"])
}

func TestGetGame_CoachSeesStaffCamera(t *testing.T) {
	router := newTestRouter(t)

	rec := doGet(t, router, "/v1/games/"+memory.GameIDFinished, "coach-token")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[gameDetailDTO](t, rec)
	require.Len(t, body.Data.Cameras, 2)
	require.Equal(t,
		[]string{"https://video.example.com/watch?v=f-tactical-1&t=960s"},
		body.Data.Events[0].Links["cam-tactical"],
	)
}

func TestGetGame_Errors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
		reason string
	}{
		{name: "missing token", path: "/v1/games/" + memory.GameIDFinished, status: http.StatusUnauthorized, reason: "UNAUTHENTICATED"},
		{name: "unknown token", path: "/v1/games/" + memory.GameIDFinished, token: "nope", status: http.StatusUnauthorized, reason: "UNAUTHENTICATED"},
		{name: "other team", path: "/v1/games/" + memory.GameIDFinished, token: "u19-token", status: http.StatusForbidden, reason: "PERMISSION_DENIED"},
		{name: "unknown game", path: "/v1/games/g-missing", token: "coach-token", status: http.StatusNotFound, reason: "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, router, tt.path, tt.token)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			body := decode[map[string]any](t, rec)
			require.NotNil(t, body.Error)
			require.Equal(t, tt.reason, body.Error.Status)
		})
	}
}

func TestListGameEvents_RunningScore(t *testing.T) {
	router := newTestRouter(t)

	rec := doGet(t, router, "/v1/games/"+memory.GameIDFinished+"/events", "player-token")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[[]gameEventDTO](t, rec)
	got := make([]scoreDTO, 0, len(body.Data))
	for _, item := range body.Data {
		got = append(got, item.Score)
		require.Empty(t, item.Links)
	}
	require.Equal(t, []scoreDTO{{1, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 1}}, got)
}

func TestGetOverview_PrincipalTeams(t *testing.T) {
	router := newTestRouter(t)

	rec := doGet(t, router, "/v1/games/overview", "coach-token")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[overviewDTO](t, rec)
	require.Equal(t, testRef.Format(time.RFC3339), body.Data.Now)
	require.Len(t, body.Data.Running, 1)
	require.Equal(t, memory.GameIDRunning, body.Data.Running[0].ID)
	require.Len(t, body.Data.Upcoming, 1)
	require.Equal(t, memory.GameIDUpcoming, body.Data.Upcoming[0].ID)
	require.Len(t, body.Data.Finished, 1)
	require.Equal(t, memory.GameIDFinished, body.Data.Finished[0].ID)
	require.Equal(t, scoreDTO{Home: 2, Away: 1}, body.Data.Finished[0].Score)
}

func TestGetTeamOverview(t *testing.T) {
	router := newTestRouter(t)

	t.Run("window narrows results", func(t *testing.T) {
		from := testRef.Add(-time.Hour).Format(time.RFC3339)
		to := testRef.Add(time.Hour).Format(time.RFC3339)
		rec := doGet(t, router, "/v1/teams/"+memory.TeamIDU19+"/games/overview?from="+from+"&to="+to, "u19-token")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode[overviewDTO](t, rec)
		require.Len(t, body.Data.Running, 1)
		require.Empty(t, body.Data.Upcoming)
		require.Empty(t, body.Data.Finished)
	})

	t.Run("non member forbidden", func(t *testing.T) {
		rec := doGet(t, router, "/v1/teams/"+memory.TeamIDU19+"/games/overview", "player-token")
		require.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
	})

	t.Run("invalid from", func(t *testing.T) {
		rec := doGet(t, router, "/v1/teams/"+memory.TeamIDU19+"/games/overview?from=yesterday", "u19-token")
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})
}

func TestHealthzAndDocs(t *testing.T) {
	router := newTestRouter(t)

	rec := doGet(t, router, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doGet(t, router, "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/v1/games/{gameID}")
}

func TestParseOptionalTime(t *testing.T) {
	t.Run("empty is open bound", func(t *testing.T) {
		got, err := parseOptionalTime("from", "")
		require.NoError(t, err)
		require.True(t, got.IsZero())
	})

	t.Run("normalises to utc", func(t *testing.T) {
		got, err := parseOptionalTime("from", "2026-03-07T17:00:00+01:00")
		require.NoError(t, err)
		require.Equal(t, testRef, got)
	})

	t.Run("layout mismatch is invalid input", func(t *testing.T) {
		_, err := parseOptionalTime("to", "2026-03-07 16:00:00")
		require.ErrorIs(t, err, usecase.ErrInvalidInput)
		require.Contains(t, err.Error(), "to")
	})
}
