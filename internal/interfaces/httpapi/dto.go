package httpapi

import (
	"sort"
	"time"

	"github.com/riskibarqy/club-manager/internal/domain/game"
	"github.com/riskibarqy/club-manager/internal/domain/team"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

type teamRefDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Short      string `json:"short,omitempty"`
	IsOpponent bool   `json:"isOpponent"`
}

type scoreDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type gameDTO struct {
	ID       string     `json:"id"`
	Title    string     `json:"title,omitempty"`
	Venue    string     `json:"venue,omitempty"`
	HomeTeam teamRefDTO `json:"homeTeam"`
	AwayTeam teamRefDTO `json:"awayTeam"`
	StartsAt string     `json:"startsAt,omitempty"`
	EndsAt   string     `json:"endsAt,omitempty"`
	Archived bool       `json:"archived"`
}

type gameEventDTO struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	TypeCode    string `json:"typeCode"`
	TeamID      string `json:"teamId,omitempty"`
	PlayerID    string `json:"playerId,omitempty"`
	OccurredAt  string `json:"occurredAt,omitempty"`
	MatchSecond int64  `json:"matchSecond"`
	// Score is the running scoreline after this event.
	Score scoreDTO            `json:"score"`
	Links map[string][]string `json:"links,omitempty"`
}

type clipDTO struct {
	ID               string `json:"id"`
	SortIndex        int    `json:"sortIndex"`
	OffsetSeconds    int64  `json:"offsetSeconds"`
	LengthSeconds    int64  `json:"lengthSeconds"`
	GameStartSeconds int64  `json:"gameStartSeconds"`
	URL              string `json:"url"`
}

type cameraDTO struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DurationSeconds int64     `json:"durationSeconds"`
	Clips           []clipDTO `json:"clips"`
}

type gameDetailDTO struct {
	Game    gameDTO        `json:"game"`
	Score   scoreDTO       `json:"score"`
	Events  []gameEventDTO `json:"events"`
	Cameras []cameraDTO    `json:"cameras"`
}

type finishedGameDTO struct {
	gameDTO
	Score scoreDTO `json:"score"`
}

type overviewDTO struct {
	Now      string            `json:"now"`
	Running  []gameDTO         `json:"running"`
	Upcoming []gameDTO         `json:"upcoming"`
	Finished []finishedGameDTO `json:"finished"`
}

func teamToRefDTO(v team.Team) teamRefDTO {
	return teamRefDTO{
		ID:         v.ID,
		Name:       v.Name,
		Short:      v.Short,
		IsOpponent: v.Opponent,
	}
}

func scoreToDTO(v game.Score) scoreDTO {
	return scoreDTO{Home: v.Home, Away: v.Away}
}

func gameToDTO(v game.Game, home, away team.Team) gameDTO {
	return gameDTO{
		ID:       v.ID,
		Title:    v.Title,
		Venue:    v.Venue,
		HomeTeam: teamToRefDTO(home),
		AwayTeam: teamToRefDTO(away),
		StartsAt: formatTime(v.StartsAt),
		EndsAt:   formatOptionalTime(v.EndsAt),
		Archived: v.IsArchived(),
	}
}

func gameEventToDTO(v usecase.GameEventDetail) gameEventDTO {
	return gameEventDTO{
		ID:          v.Event.ID,
		Type:        v.Type.String(),
		TypeCode:    v.Event.TypeCode,
		TeamID:      v.Event.TeamID,
		PlayerID:    v.Event.PlayerID,
		OccurredAt:  formatTime(v.Event.OccurredAt),
		MatchSecond: v.MatchSecond,
		Score:       scoreToDTO(v.ScoreAfter),
		Links:       v.Links,
	}
}

func gameDetailToDTO(v usecase.GameDetail) gameDetailDTO {
	events := make([]gameEventDTO, 0, len(v.Events))
	for _, item := range v.Events {
		events = append(events, gameEventToDTO(item))
	}

	cameras := make([]cameraDTO, 0, len(v.Cameras))
	for _, item := range v.Cameras {
		clips := make([]clipDTO, 0, len(item.Track.Entries))
		for _, entry := range item.Track.Entries {
			clips = append(clips, clipDTO{
				ID:               entry.Clip.ID,
				SortIndex:        entry.Clip.SortIndex,
				OffsetSeconds:    entry.Offset,
				LengthSeconds:    entry.Clip.Length,
				GameStartSeconds: entry.Clip.GameStart,
				URL:              entry.Clip.URL,
			})
		}
		cameras = append(cameras, cameraDTO{
			ID:              item.Camera.ID,
			Name:            item.Camera.Name,
			DurationSeconds: item.Track.Duration(),
			Clips:           clips,
		})
	}

	return gameDetailDTO{
		Game:    gameToDTO(v.Game, v.HomeTeam, v.AwayTeam),
		Score:   scoreToDTO(v.Score),
		Events:  events,
		Cameras: cameras,
	}
}

func overviewToDTO(v usecase.GameOverview) overviewDTO {
	lookup := func(id string) team.Team {
		if item, ok := v.Teams[id]; ok {
			return item
		}
		return team.Team{ID: id}
	}

	out := overviewDTO{
		Now:      formatTime(v.Now),
		Running:  make([]gameDTO, 0, len(v.Running)),
		Upcoming: make([]gameDTO, 0, len(v.Upcoming)),
		Finished: make([]finishedGameDTO, 0, len(v.Finished)),
	}
	for _, item := range v.Running {
		out.Running = append(out.Running, gameToDTO(item, lookup(item.HomeTeamID), lookup(item.AwayTeamID)))
	}
	for _, item := range v.Upcoming {
		out.Upcoming = append(out.Upcoming, gameToDTO(item, lookup(item.HomeTeamID), lookup(item.AwayTeamID)))
	}
	for _, item := range v.Finished {
		out.Finished = append(out.Finished, finishedGameDTO{
			gameDTO: gameToDTO(item.Game, lookup(item.Game.HomeTeamID), lookup(item.Game.AwayTeamID)),
			Score:   scoreToDTO(item.Score),
		})
	}
	// Most recent result first.
	sort.SliceStable(out.Finished, func(i, j int) bool {
		return out.Finished[i].StartsAt > out.Finished[j].StartsAt
	})

	return out
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}
