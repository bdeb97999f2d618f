package game

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	now := time.Date(2026, time.March, 7, 16, 0, 0, 0, time.UTC)
	endsAt := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	games := []Game{
		{ID: "running", StartsAt: now.Add(-time.Hour), EndsAt: endsAt(time.Hour)},
		{ID: "running-edge", StartsAt: now, EndsAt: endsAt(0)},
		{ID: "upcoming", StartsAt: now.Add(time.Hour), EndsAt: endsAt(3 * time.Hour)},
		{ID: "finished", StartsAt: now.Add(-3 * time.Hour), EndsAt: endsAt(-time.Hour)},
		{ID: "finished-no-end", StartsAt: now.Add(-time.Minute)},
		{ID: "no-start"},
	}

	got := Classify(games, now)

	assertIDs(t, "running", got.Running, "running", "running-edge")
	assertIDs(t, "upcoming", got.Upcoming, "upcoming")
	assertIDs(t, "finished", got.Finished, "finished", "finished-no-end")

	total := len(got.Running) + len(got.Upcoming) + len(got.Finished)
	if total != len(games)-1 {
		t.Fatalf("every classifiable game must land in exactly one bucket: got=%d", total)
	}
}

func TestPhaseAt_UpcomingWithoutEnd(t *testing.T) {
	now := time.Date(2026, time.March, 7, 16, 0, 0, 0, time.UTC)

	phase, ok := PhaseAt(Game{StartsAt: now.Add(time.Second)}, now)
	if !ok || phase != PhaseUpcoming {
		t.Fatalf("unexpected phase: %s ok=%t", phase, ok)
	}
}

func assertIDs(t *testing.T, bucket string, games []Game, want ...string) {
	t.Helper()

	if len(games) != len(want) {
		t.Fatalf("unexpected %s count: got=%d want=%d", bucket, len(games), len(want))
	}
	for i, id := range want {
		if games[i].ID != id {
			t.Fatalf("unexpected %s[%d]: got=%s want=%s", bucket, i, games[i].ID, id)
		}
	}
}
