package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
)

type fakeMigrator struct {
	upErr      error
	steps      []int
	version    uint
	dirty      bool
	versionErr error
	forced     []int
	migrated   []uint
}

func (f *fakeMigrator) Up() error { return f.upErr }

func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, f.dirty, f.versionErr }

func (f *fakeMigrator) Force(version int) error {
	f.forced = append(f.forced, version)
	return nil
}

func (f *fakeMigrator) Migrate(version uint) error {
	f.migrated = append(f.migrated, version)
	return migrate.ErrNoChange
}

func TestRun(t *testing.T) {
	logger := logging.NewNop()

	t.Run("up ignores no change", func(t *testing.T) {
		m := &fakeMigrator{upErr: migrate.ErrNoChange}
		if err := run(m, []string{"up"}, &bytes.Buffer{}, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("up propagates failure", func(t *testing.T) {
		m := &fakeMigrator{upErr: errors.New("dirty database")}
		if err := run(m, []string{"UP"}, &bytes.Buffer{}, logger); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("down defaults to one step", func(t *testing.T) {
		m := &fakeMigrator{}
		if err := run(m, []string{"down"}, &bytes.Buffer{}, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(m.steps) != 1 || m.steps[0] != -1 {
			t.Fatalf("unexpected steps: %v", m.steps)
		}
	})

	t.Run("version without migrations", func(t *testing.T) {
		var out bytes.Buffer
		m := &fakeMigrator{versionErr: migrate.ErrNilVersion}
		if err := run(m, []string{"version"}, &out, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.String() != "version: none\ndirty: false\n" {
			t.Fatalf("unexpected output: %q", out.String())
		}
	})

	t.Run("version prints current", func(t *testing.T) {
		var out bytes.Buffer
		m := &fakeMigrator{version: 1772000100, dirty: true}
		if err := run(m, []string{"version"}, &out, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.String() != "version: 1772000100\ndirty: true\n" {
			t.Fatalf("unexpected output: %q", out.String())
		}
	})

	t.Run("force and goto", func(t *testing.T) {
		m := &fakeMigrator{}
		if err := run(m, []string{"force", "1772000000"}, &bytes.Buffer{}, logger); err != nil {
			t.Fatalf("force: %v", err)
		}
		if err := run(m, []string{"goto", "1772000100"}, &bytes.Buffer{}, logger); err != nil {
			t.Fatalf("goto: %v", err)
		}
		if len(m.forced) != 1 || m.forced[0] != 1772000000 {
			t.Fatalf("unexpected forced versions: %v", m.forced)
		}
		if len(m.migrated) != 1 || m.migrated[0] != 1772000100 {
			t.Fatalf("unexpected migrate targets: %v", m.migrated)
		}
	})

	t.Run("missing arguments", func(t *testing.T) {
		for _, args := range [][]string{{"force"}, {"goto"}, {"down", "0"}, {"down", "x"}} {
			if err := run(&fakeMigrator{}, args, &bytes.Buffer{}, logger); err == nil {
				t.Fatalf("expected error for %v", args)
			}
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		if err := run(&fakeMigrator{}, []string{"seed"}, &bytes.Buffer{}, logger); !errors.Is(err, errUsage) {
			t.Fatalf("expected usage error, got %v", err)
		}
	})
}

func TestParseVersion(t *testing.T) {
	if v, err := parseVersion(" -1 "); err != nil || v != -1 {
		t.Fatalf("expected -1, got %d, %v", v, err)
	}
	if _, err := parseVersion("-2"); err == nil {
		t.Fatalf("expected error for -2")
	}
	if _, err := parseTarget("-1"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}
