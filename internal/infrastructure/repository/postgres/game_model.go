package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/club-manager/internal/domain/game"
)

const gameColumns = "id, public_id, home_team_public_id, away_team_public_id, title, venue, " +
	"starts_at, ends_at, archived_at, created_at, updated_at, deleted_at"

type gameTableModel struct {
	ID         int64        `db:"id"`
	PublicID   string       `db:"public_id"`
	HomeTeamID string       `db:"home_team_public_id"`
	AwayTeamID string       `db:"away_team_public_id"`
	Title      string       `db:"title"`
	Venue      string       `db:"venue"`
	StartsAt   sql.NullTime `db:"starts_at"`
	EndsAt     sql.NullTime `db:"ends_at"`
	ArchivedAt sql.NullTime `db:"archived_at"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
	DeletedAt  *time.Time   `db:"deleted_at"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:         m.PublicID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		Title:      m.Title,
		Venue:      m.Venue,
		StartsAt:   nullTimeToTime(m.StartsAt),
		EndsAt:     nullTimeToPtr(m.EndsAt),
		ArchivedAt: nullTimeToPtr(m.ArchivedAt),
	}
}

const gameEventColumns = "id, public_id, game_public_id, type_code, occurred_at, team_public_id, player_public_id"

type gameEventTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	GameID     string         `db:"game_public_id"`
	TypeCode   string         `db:"type_code"`
	OccurredAt sql.NullTime   `db:"occurred_at"`
	TeamID     sql.NullString `db:"team_public_id"`
	PlayerID   sql.NullString `db:"player_public_id"`
}

func (m gameEventTableModel) toDomain() game.Event {
	return game.Event{
		ID:         m.PublicID,
		GameID:     m.GameID,
		TypeCode:   m.TypeCode,
		OccurredAt: nullTimeToTime(m.OccurredAt),
		TeamID:     nullStringValue(m.TeamID),
		PlayerID:   nullStringValue(m.PlayerID),
	}
}
