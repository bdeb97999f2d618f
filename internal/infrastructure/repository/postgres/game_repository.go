package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/club-manager/internal/domain/game"
	qb "github.com/riskibarqy/club-manager/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select(gameColumns).From("games").
		Where(
			qb.Eq("public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return game.Game{}, false, crerr.Wrap(err, "build get game by id query")
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, crerr.Wrapf(err, "get game by id %s", gameID)
	}

	return row.toDomain(), true, nil
}

// ListByTeams returns non-archived games where any of the teams plays home
// or away, ordered by kickoff. Window bounds are inclusive; zero bounds are
// open. Games without a kickoff are only returned for a fully open window.
func (r *GameRepository) ListByTeams(ctx context.Context, teamIDs []string, window game.Window) ([]game.Game, error) {
	teamIDs = normalizeIDs(teamIDs)
	if len(teamIDs) == 0 {
		return []game.Game{}, nil
	}

	ids := pq.Array(teamIDs)
	conditions := []qb.Condition{
		qb.Or(qb.Any("home_team_public_id", ids), qb.Any("away_team_public_id", ids)),
		qb.IsNull("archived_at"),
		qb.IsNull("deleted_at"),
	}
	if !window.From.IsZero() {
		conditions = append(conditions, qb.Gte("starts_at", window.From.UTC()))
	}
	if !window.To.IsZero() {
		conditions = append(conditions, qb.Lte("starts_at", window.To.UTC()))
	}

	query, args, err := qb.Select(gameColumns).From("games").
		Where(conditions...).
		OrderBy("starts_at ASC NULLS LAST", "public_id ASC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select games by teams query")
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select games by teams")
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type GameEventRepository struct {
	db *sqlx.DB
}

func NewGameEventRepository(db *sqlx.DB) *GameEventRepository {
	return &GameEventRepository{db: db}
}

func (r *GameEventRepository) ListByGame(ctx context.Context, gameID string) ([]game.Event, error) {
	query, args, err := qb.Select(gameEventColumns).From("game_events").
		Where(
			qb.Eq("game_public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("occurred_at ASC NULLS LAST", "public_id ASC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select game events query")
	}

	var rows []gameEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "select events for game %s", gameID)
	}

	out := make([]game.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
