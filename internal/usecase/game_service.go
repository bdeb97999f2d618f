package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/club-manager/internal/domain/game"
	"github.com/riskibarqy/club-manager/internal/domain/team"
	"github.com/riskibarqy/club-manager/internal/domain/user"
	"github.com/riskibarqy/club-manager/internal/domain/video"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// AccessPolicy decides what a principal may see. It is consulted once per
// game and once per clip.
type AccessPolicy interface {
	CanViewGame(ctx context.Context, principal user.Principal, g game.Game) bool
	CanViewVideo(ctx context.Context, principal user.Principal, g game.Game, clip video.Video) bool
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type GameServiceConfig struct {
	Preroll           time.Duration
	OverviewWorkers   int
	OverviewLookback  time.Duration
	OverviewLookahead time.Duration
}

func DefaultGameServiceConfig() GameServiceConfig {
	return GameServiceConfig{
		Preroll:           video.DefaultPreroll,
		OverviewWorkers:   8,
		OverviewLookback:  30 * 24 * time.Hour,
		OverviewLookahead: 30 * 24 * time.Hour,
	}
}

type GameDetail struct {
	Game     game.Game
	HomeTeam team.Team
	AwayTeam team.Team
	Score    game.Score
	Events   []GameEventDetail
	Cameras  []CameraTrack
}

type GameEventDetail struct {
	Event       game.Event
	Type        game.EventType
	MatchSecond int64
	ScoreAfter  game.Score
	// Links maps camera id to playback URLs. Nil when no camera covers the event.
	Links map[string][]string
}

type CameraTrack struct {
	Camera video.Camera
	Track  video.Track
}

type OverviewFilter struct {
	TeamID string
	From   time.Time
	To     time.Time
}

type GameOverview struct {
	Now      time.Time
	Running  []game.Game
	Upcoming []game.Game
	Finished []FinishedGame
	Teams    map[string]team.Team
}

type FinishedGame struct {
	Game  game.Game
	Score game.Score
}

type GameService struct {
	gameRepo   game.Repository
	eventRepo  game.EventRepository
	videoRepo  video.Repository
	cameraRepo video.CameraRepository
	teamRepo   team.Repository
	policy     AccessPolicy
	clock      Clock
	cfg        GameServiceConfig
	linker     video.Linker
	logger     *logging.Logger
}

func NewGameService(
	gameRepo game.Repository,
	eventRepo game.EventRepository,
	videoRepo video.Repository,
	cameraRepo video.CameraRepository,
	teamRepo team.Repository,
	policy AccessPolicy,
	clock Clock,
	cfg GameServiceConfig,
	logger *logging.Logger,
) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	defaults := DefaultGameServiceConfig()
	if cfg.OverviewWorkers < 1 {
		cfg.OverviewWorkers = defaults.OverviewWorkers
	}
	if cfg.OverviewLookback <= 0 {
		cfg.OverviewLookback = defaults.OverviewLookback
	}
	if cfg.OverviewLookahead <= 0 {
		cfg.OverviewLookahead = defaults.OverviewLookahead
	}

	return &GameService{
		gameRepo:   gameRepo,
		eventRepo:  eventRepo,
		videoRepo:  videoRepo,
		cameraRepo: cameraRepo,
		teamRepo:   teamRepo,
		policy:     policy,
		clock:      clock,
		cfg:        cfg,
		linker:     video.NewLinker(cfg.Preroll),
		logger:     logger,
	}
}

func (s *GameService) GetDetail(ctx context.Context, principal user.Principal, gameID string) (GameDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.GetDetail")
	defer span.End()

	item, err := s.loadVisibleGame(ctx, principal, gameID)
	if err != nil {
		return GameDetail{}, err
	}

	var (
		events []game.Event
		clips  []video.Video
		teams  []team.Team
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		out, err := s.eventRepo.ListByGame(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list game events: %w", err)
		}
		events = out
		return nil
	})
	p.Go(func(ctx context.Context) error {
		out, err := s.videoRepo.ListByGame(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list game videos: %w", err)
		}
		clips = out
		return nil
	})
	p.Go(func(ctx context.Context) error {
		out, err := s.teamRepo.ListByIDs(ctx, []string{item.HomeTeamID, item.AwayTeamID})
		if err != nil {
			return fmt.Errorf("list game teams: %w", err)
		}
		teams = out
		return nil
	})
	if err := p.Wait(); err != nil {
		return GameDetail{}, err
	}

	viewable := video.FilterViewable(clips, func(clip video.Video) bool {
		return s.policy.CanViewVideo(ctx, principal, item, clip)
	})
	tracks := video.BuildTracks(viewable)

	cameras, err := s.loadCameras(ctx, tracks)
	if err != nil {
		return GameDetail{}, err
	}

	ordered := game.SortEvents(events)
	details := s.describeEvents(item, ordered, tracks)

	teamByID := indexTeams(teams)
	detail := GameDetail{
		Game:     item,
		HomeTeam: teamOrPlaceholder(teamByID, item.HomeTeamID),
		AwayTeam: teamOrPlaceholder(teamByID, item.AwayTeamID),
		Score:    game.AccumulateScore(item, ordered),
		Events:   details,
		Cameras:  cameras,
	}

	s.logger.DebugContext(ctx, "game detail assembled",
		"game_id", item.ID,
		"events", len(ordered),
		"clips", len(clips),
		"viewable_clips", len(viewable),
		"cameras", len(tracks),
	)

	return detail, nil
}

func (s *GameService) ListEvents(ctx context.Context, principal user.Principal, gameID string) ([]GameEventDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ListEvents")
	defer span.End()

	item, err := s.loadVisibleGame(ctx, principal, gameID)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByGame(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list game events: %w", err)
	}

	return s.describeEvents(item, game.SortEvents(events), nil), nil
}

func (s *GameService) Overview(ctx context.Context, principal user.Principal, filter OverviewFilter) (GameOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Overview")
	defer span.End()

	now := s.clock.Now()
	out := GameOverview{
		Now:      now,
		Running:  []game.Game{},
		Upcoming: []game.Game{},
		Finished: []FinishedGame{},
		Teams:    map[string]team.Team{},
	}

	teamIDs, err := s.resolveOverviewTeams(ctx, principal, filter.TeamID)
	if err != nil {
		return GameOverview{}, err
	}
	if len(teamIDs) == 0 {
		return out, nil
	}

	window := game.Window{From: filter.From, To: filter.To}
	if window.From.IsZero() {
		window.From = now.Add(-s.cfg.OverviewLookback)
	}
	if window.To.IsZero() {
		window.To = now.Add(s.cfg.OverviewLookahead)
	}
	if window.To.Before(window.From) {
		return GameOverview{}, fmt.Errorf("%w: window end is before start", ErrInvalidInput)
	}

	games, err := s.gameRepo.ListByTeams(ctx, teamIDs, window)
	if err != nil {
		return GameOverview{}, fmt.Errorf("list games by teams: %w", err)
	}

	classified := game.Classify(games, now)
	finished, err := s.scoreFinished(ctx, classified.Finished)
	if err != nil {
		return GameOverview{}, err
	}

	teams, err := s.teamRepo.ListByIDs(ctx, collectTeamIDs(games))
	if err != nil {
		return GameOverview{}, fmt.Errorf("list overview teams: %w", err)
	}

	out.Running = classified.Running
	out.Upcoming = classified.Upcoming
	out.Finished = finished
	out.Teams = indexTeams(teams)

	return out, nil
}

func (s *GameService) loadVisibleGame(ctx context.Context, principal user.Principal, gameID string) (game.Game, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	item, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}
	if !s.policy.CanViewGame(ctx, principal, item) {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrForbidden, gameID)
	}

	return item, nil
}

// describeEvents expects events in chronological order. Links are only
// computed when the game has a kickoff instant and tracks are supplied.
func (s *GameService) describeEvents(item game.Game, events []game.Event, tracks []video.Track) []GameEventDetail {
	running := game.RunningScores(item, events)
	out := make([]GameEventDetail, 0, len(events))
	positions := make([]video.EventPosition, 0, len(events))
	for i, event := range events {
		detail := GameEventDetail{
			Event:      event,
			Type:       event.Type(),
			ScoreAfter: running[i],
		}
		if item.HasStart() && !event.OccurredAt.IsZero() {
			detail.MatchSecond = video.MatchSeconds(event.OccurredAt, item.StartsAt)
			positions = append(positions, video.EventPosition{EventID: event.ID, MatchSecond: detail.MatchSecond})
		}
		out = append(out, detail)
	}

	if len(tracks) == 0 || len(positions) == 0 {
		return out
	}

	links := s.linker.Compose(tracks, positions)
	for i := range out {
		if byCamera, ok := links[out[i].Event.ID]; ok {
			out[i].Links = byCamera
		}
	}
	return out
}

func (s *GameService) loadCameras(ctx context.Context, tracks []video.Track) ([]CameraTrack, error) {
	if len(tracks) == 0 {
		return []CameraTrack{}, nil
	}

	cameraIDs := make([]string, 0, len(tracks))
	for _, track := range tracks {
		cameraIDs = append(cameraIDs, track.CameraID)
	}

	cameras, err := s.cameraRepo.ListByIDs(ctx, cameraIDs)
	if err != nil {
		return nil, fmt.Errorf("list cameras: %w", err)
	}
	cameraByID := make(map[string]video.Camera, len(cameras))
	for _, camera := range cameras {
		cameraByID[camera.ID] = camera
	}

	out := make([]CameraTrack, 0, len(tracks))
	for _, track := range tracks {
		camera, ok := cameraByID[track.CameraID]
		if !ok {
			camera = video.Camera{ID: track.CameraID}
		}
		out = append(out, CameraTrack{Camera: camera, Track: track})
	}
	return out, nil
}

func (s *GameService) resolveOverviewTeams(ctx context.Context, principal user.Principal, teamID string) ([]string, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return uniqueNonEmpty(principal.TeamIDs), nil
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if !principal.IsStaff() && !principal.BelongsTo(teamID) {
		return nil, fmt.Errorf("%w: team=%s", ErrForbidden, teamID)
	}

	return []string{teamID}, nil
}

func (s *GameService) scoreFinished(ctx context.Context, games []game.Game) ([]FinishedGame, error) {
	out := make([]FinishedGame, len(games))
	if len(games) == 0 {
		return out, nil
	}

	workers := s.cfg.OverviewWorkers
	if workers > len(games) {
		workers = len(games)
	}
	workerPool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	errs := make([]error, len(games))
	var wg sync.WaitGroup
	for i, item := range games {
		wg.Add(1)
		if err := workerPool.Submit(func() {
			defer wg.Done()

			events, err := s.eventRepo.ListByGame(ctx, item.ID)
			if err != nil {
				errs[i] = fmt.Errorf("list events for game %s: %w", item.ID, err)
				return
			}
			out[i] = FinishedGame{Game: item, Score: game.AccumulateScore(item, events)}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit score task to worker pool: %w", err)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func indexTeams(teams []team.Team) map[string]team.Team {
	out := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		out[item.ID] = item
	}
	return out
}

func teamOrPlaceholder(teams map[string]team.Team, teamID string) team.Team {
	if item, ok := teams[teamID]; ok {
		return item
	}
	return team.Team{ID: teamID}
}

func collectTeamIDs(games []game.Game) []string {
	ids := make([]string, 0, len(games)*2)
	for _, item := range games {
		ids = append(ids, item.HomeTeamID, item.AwayTeamID)
	}
	return uniqueNonEmpty(ids)
}

func uniqueNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
