package history

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"fightlog/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func snapshot(date string, ts int64, dps float64) *model.FightSnapshot {
	return &model.FightSnapshot{
		Date:        date,
		Timestamp:   ts,
		CombatTime:  60,
		TotalDamage: dps * 60,
		DPS:         dps,
		Abilities: map[string]*model.AbilityStats{
			"Fireball": {Hits: 10, TotalDamage: dps * 60},
		},
	}
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "default.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestCapture_BoundHoldsAfterEveryCapture(t *testing.T) {
	s := openTemp(t)
	for i := int64(1); i <= 10; i++ {
		if err := s.Capture("Lucifron", snapshot("2026-08-31", i, 900+float64(i))); err != nil {
			t.Fatalf("capture %d: %v", i, err)
		}
		if got := len(s.Database().History("Lucifron")); got > s.KeepCount() {
			t.Fatalf("after capture %d: history length %d exceeds keep count %d", i, got, s.KeepCount())
		}
	}
}

func TestCapture_NewestFirstAndFIFOEviction(t *testing.T) {
	s := openTemp(t)
	for _, dps := range []float64{900, 950, 1067, 1100} {
		if err := s.Capture("Lucifron", snapshot("2026-08-31", int64(dps), dps)); err != nil {
			t.Fatalf("capture: %v", err)
		}
	}

	hist := s.Database().History("Lucifron")
	if len(hist) != 3 {
		t.Fatalf("history length = %d, want 3", len(hist))
	}
	// Oldest (900) is evicted regardless of quality; order is newest first.
	want := []float64{1100, 1067, 950}
	for i, dps := range want {
		if hist[i].DPS != dps {
			t.Errorf("hist[%d].DPS = %v, want %v", i, hist[i].DPS, dps)
		}
	}
}

func TestCapture_ZeroDamageIsNoOp(t *testing.T) {
	s := openTemp(t)
	if err := s.Capture("Lucifron", snapshot("2026-08-31", 1, 1000)); err != nil {
		t.Fatalf("capture: %v", err)
	}

	dead := snapshot("2026-08-31", 2, 0)
	dead.TotalDamage = 0
	if err := s.Capture("Lucifron", dead); !errors.Is(err, ErrNotSignificant) {
		t.Fatalf("expected ErrNotSignificant, got %v", err)
	}
	if got := len(s.Database().History("Lucifron")); got != 1 {
		t.Errorf("history length changed to %d after zero-damage capture", got)
	}
}

func TestDelete_ByIndexShiftsUp(t *testing.T) {
	s := openTemp(t)
	for _, dps := range []float64{900, 950, 1067} {
		if err := s.Capture("Lucifron", snapshot("2026-08-31", int64(dps), dps)); err != nil {
			t.Fatalf("capture: %v", err)
		}
	}

	res, err := s.Delete("Lucifron-2")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if res.Snapshot.DPS != 950 {
		t.Errorf("deleted DPS = %v, want 950", res.Snapshot.DPS)
	}

	hist := s.Database().History("Lucifron")
	if len(hist) != 2 || hist[0].DPS != 1067 || hist[1].DPS != 900 {
		t.Errorf("unexpected history after delete: %+v", hist)
	}
}

func TestDelete_LastSnapshotRemovesEncounter(t *testing.T) {
	s := openTemp(t)
	if err := s.Capture("Gehennas", snapshot("2026-08-30", 1, 800)); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if _, err := s.Delete("Gehennas"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.Database().Bosses["Gehennas"]; ok {
		t.Error("encounter should be gone after its last kill is deleted")
	}
}

func TestSetKeepCount_DeferredPruning(t *testing.T) {
	s := openTemp(t)
	for _, dps := range []float64{900, 950, 1067} {
		if err := s.Capture("Lucifron", snapshot("2026-08-31", int64(dps), dps)); err != nil {
			t.Fatalf("capture: %v", err)
		}
	}

	if err := s.SetKeepCount(2); err != nil {
		t.Fatalf("set keep count: %v", err)
	}
	// No eager re-prune: the existing history keeps its 3 entries.
	if got := len(s.Database().History("Lucifron")); got != 3 {
		t.Fatalf("history length = %d immediately after keepcount change, want 3", got)
	}

	// The next capture for that encounter applies the new bound.
	if err := s.Capture("Lucifron", snapshot("2026-08-31", 4, 1100)); err != nil {
		t.Fatalf("capture: %v", err)
	}
	hist := s.Database().History("Lucifron")
	if len(hist) != 2 || hist[0].DPS != 1100 || hist[1].DPS != 1067 {
		t.Errorf("unexpected history after deferred prune: %+v", hist)
	}
}

func TestSetKeepCount_RejectsNonPositive(t *testing.T) {
	s := openTemp(t)
	for _, n := range []int{0, -3} {
		if err := s.SetKeepCount(n); !errors.Is(err, ErrInvalidKeepCount) {
			t.Errorf("SetKeepCount(%d): expected ErrInvalidKeepCount, got %v", n, err)
		}
	}
	if got := s.KeepCount(); got != model.DefaultKeepCount {
		t.Errorf("keep count changed to %d after rejected updates", got)
	}
}

func TestRoundTrip_PreservesSnapshotsAndOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, enc := range []string{"Lucifron", "Magmadar"} {
		for i, dps := range []float64{900, 950, 1067} {
			if err := s.Capture(enc, snapshot("2026-08-31", int64(i+1), dps)); err != nil {
				t.Fatalf("capture: %v", err)
			}
		}
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reflect.DeepEqual(s.Database(), reloaded.Database()) {
		t.Errorf("reloaded database differs:\n got %+v\nwant %+v", reloaded.Database(), s.Database())
	}
}

func TestLoad_MigratesLegacyStructure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.json")
	// A database saved before config/bosses existed.
	writeFile(t, path, `{}`)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open legacy database: %v", err)
	}
	if got := s.KeepCount(); got != model.DefaultKeepCount {
		t.Errorf("keep count = %d, want backfilled default %d", got, model.DefaultKeepCount)
	}
	if err := s.Capture("Lucifron", snapshot("2026-08-31", 1, 900)); err != nil {
		t.Errorf("capture into migrated database: %v", err)
	}
}

func TestLoad_MigrationKeepsExistingSnapshots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.json")
	writeFile(t, path, `{"bosses":{"Lucifron":[{"date":"2026-08-30","timestamp":1,"combat_time":50,"total_damage":45000,"dps":900,"abilities":{}}]}}`)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	hist := s.Database().History("Lucifron")
	if len(hist) != 1 || hist[0].DPS != 900 {
		t.Fatalf("migration lost snapshots: %+v", hist)
	}
	if got := s.KeepCount(); got != model.DefaultKeepCount {
		t.Errorf("keep count = %d, want backfilled default", got)
	}
}
