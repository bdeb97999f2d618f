package postgres

import (
	"time"

	"github.com/riskibarqy/club-manager/internal/domain/team"
)

const teamColumns = "id, public_id, club_id, name, short, is_opponent, created_at, updated_at, deleted_at"

type teamTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	ClubID     string     `db:"club_id"`
	Name       string     `db:"name"`
	Short      string     `db:"short"`
	IsOpponent bool       `db:"is_opponent"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:       m.PublicID,
		ClubID:   m.ClubID,
		Name:     m.Name,
		Short:    m.Short,
		Opponent: m.IsOpponent,
	}
}
