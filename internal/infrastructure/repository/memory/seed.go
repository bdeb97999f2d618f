package memory

import (
	"time"

	"github.com/riskibarqy/club-manager/internal/domain/game"
	"github.com/riskibarqy/club-manager/internal/domain/team"
	"github.com/riskibarqy/club-manager/internal/domain/video"
)

const (
	ClubIDDemo = "club-demo"

	TeamIDFirstTeam = "first-team"
	TeamIDU19       = "u19"

	GameIDFinished    = "g-first-team-rovers"
	GameIDRunning     = "g-u19-city"
	GameIDUpcoming    = "g-athletic-first-team"
	GameIDUnscheduled = "g-u19-rovers-tbd"
)

// Dataset is a self-consistent demo club used when STORAGE_DRIVER=memory.
type Dataset struct {
	Teams   []team.Team
	Games   []game.Game
	Events  []game.Event
	Cameras []video.Camera
	Videos  []video.Video
}

// Seed builds the demo dataset around ref so that one game is running, one
// finished and one upcoming when the service boots.
func Seed(ref time.Time) Dataset {
	ref = ref.UTC().Truncate(time.Minute)

	finishedKickoff := ref.Add(-72 * time.Hour)
	finishedEnd := finishedKickoff.Add(105 * time.Minute)
	runningKickoff := ref.Add(-30 * time.Minute)
	runningEnd := runningKickoff.Add(105 * time.Minute)
	upcomingKickoff := ref.Add(5 * 24 * time.Hour)

	return Dataset{
		Teams: []team.Team{
			{ID: TeamIDFirstTeam, ClubID: ClubIDDemo, Name: "First Team", Short: "FT"},
			{ID: TeamIDU19, ClubID: ClubIDDemo, Name: "Under 19", Short: "U19"},
			{ID: "opp-rovers", Name: "Rovers", Short: "ROV", Opponent: true},
			{ID: "opp-city", Name: "City", Short: "CTY", Opponent: true},
			{ID: "opp-athletic", Name: "Athletic", Short: "ATH", Opponent: true},
		},
		Games: []game.Game{
			{
				ID:         GameIDFinished,
				HomeTeamID: TeamIDFirstTeam,
				AwayTeamID: "opp-rovers",
				Title:      "First Team vs Rovers",
				Venue:      "Club Stadium",
				StartsAt:   finishedKickoff,
				EndsAt:     &finishedEnd,
			},
			{
				ID:         GameIDRunning,
				HomeTeamID: TeamIDU19,
				AwayTeamID: "opp-city",
				Title:      "U19 vs City",
				Venue:      "Training Ground Pitch 2",
				StartsAt:   runningKickoff,
				EndsAt:     &runningEnd,
			},
			{
				ID:         GameIDUpcoming,
				HomeTeamID: "opp-athletic",
				AwayTeamID: TeamIDFirstTeam,
				Title:      "Athletic vs First Team",
				Venue:      "Athletic Park",
				StartsAt:   upcomingKickoff,
			},
			{
				ID:         GameIDUnscheduled,
				HomeTeamID: TeamIDU19,
				AwayTeamID: "opp-rovers",
				Title:      "U19 vs Rovers (date tbd)",
			},
		},
		Events: []game.Event{
			{ID: "ev-f-1", GameID: GameIDFinished, TypeCode: game.CodeGoal, TeamID: TeamIDFirstTeam, PlayerID: "p-9", OccurredAt: finishedKickoff.Add(12 * time.Minute)},
			{ID: "ev-f-2", GameID: GameIDFinished, TypeCode: game.CodeYellowCard, TeamID: "opp-rovers", OccurredAt: finishedKickoff.Add(31 * time.Minute)},
			{ID: "ev-f-3", GameID: GameIDFinished, TypeCode: game.CodeOwnGoal, TeamID: "opp-rovers", OccurredAt: finishedKickoff.Add(46 * time.Minute)},
			{ID: "ev-f-4", GameID: GameIDFinished, TypeCode: game.CodeGoal, TeamID: "opp-rovers", OccurredAt: finishedKickoff.Add(78 * time.Minute)},
			{ID: "ev-f-5", GameID: GameIDFinished, TypeCode: game.CodeSubstitution, TeamID: TeamIDFirstTeam, OccurredAt: finishedKickoff.Add(80 * time.Minute)},
			{ID: "ev-r-1", GameID: GameIDRunning, TypeCode: game.CodeGoal, TeamID: "opp-city", OccurredAt: runningKickoff.Add(20 * time.Minute)},
		},
		Cameras: []video.Camera{
			{ID: "cam-main", ClubID: ClubIDDemo, Name: "Main stand"},
			{ID: "cam-tactical", ClubID: ClubIDDemo, Name: "Tactical wide"},
		},
		Videos: []video.Video{
			{ID: "v-f-main-1", GameID: GameIDFinished, CameraID: "cam-main", SortIndex: 1, Length: 2700, URL: "https://video.example.com/watch?v=f-main-1", Visibility: video.VisibilityClub},
			{ID: "v-f-main-2", GameID: GameIDFinished, CameraID: "cam-main", SortIndex: 2, Length: 3600, URL: "https://video.example.com/watch?v=f-main-2", Visibility: video.VisibilityClub},
			{ID: "v-f-tactical-1", GameID: GameIDFinished, CameraID: "cam-tactical", SortIndex: 1, Length: 6600, GameStart: 300, URL: "https://video.example.com/watch?v=f-tactical-1", Visibility: video.VisibilityStaff},
			{ID: "v-r-main-1", GameID: GameIDRunning, CameraID: "cam-main", SortIndex: 1, Length: 1800, URL: "https://video.example.com/watch?v=r-main-1", Visibility: video.VisibilityPublic},
		},
	}
}
