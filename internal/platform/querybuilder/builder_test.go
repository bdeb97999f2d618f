package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("teams").
		Where(Eq("club_id", "c1"), IsNull("deleted_at")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM teams WHERE club_id = $1 AND deleted_at IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "c1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_OrAnyAndRange(t *testing.T) {
	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	ids := []string{"u19", "u21"}

	query, args, err := Select("g.id").
		From("games g").
		Where(
			Or(Any("g.home_team_id", ids), Any("g.away_team_id", ids)),
			Gte("g.starts_at", from),
			Lt("g.starts_at", to),
			IsNull("g.archived_at"),
		).
		OrderBy("g.starts_at ASC", "g.id ASC").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT g.id FROM games g WHERE (g.home_team_id = ANY($1) OR g.away_team_id = ANY($2)) " +
		"AND g.starts_at >= $3 AND g.starts_at < $4 AND g.archived_at IS NULL ORDER BY g.starts_at ASC, g.id ASC"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != from || args[3] != to {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InAndExpr(t *testing.T) {
	query, args, err := Select("v.id", "c.name").
		From("videos v").
		LeftJoin("cameras c", "c.id = v.camera_id").
		Where(In("v.visibility", []any{"public", "club"}), Expr("v.length_seconds > ?", 0)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT v.id, c.name FROM videos v LEFT JOIN cameras c ON c.id = v.camera_id " +
		"WHERE v.visibility IN ($1, $2) AND v.length_seconds > $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("cameras").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM cameras WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_Validation(t *testing.T) {
	if _, _, err := Select().From("games").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}
