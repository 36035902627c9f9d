package adapter

import (
	"math"
	"testing"
	"time"

	"fightlog/internal/model"
	"fightlog/internal/source"
)

var captureTime = time.Date(2026, 8, 31, 21, 15, 0, 0, time.UTC)

func testSegment() source.Segment {
	return source.Segment{
		Name:     "Lucifron",
		Duration: 45.0,
		Records: map[string]map[string][]float64{
			"Thrall": {
				// hits, hitMin/Max/Avg, crits, critMin/Max/Avg, miss,
				// parry, dodge, resist, totalDamage, glance..., block...
				"1001": {30, 80, 120, 100, 10, 160, 240, 200, 2, 0, 0, 3, 5000, 0, 0, 0, 0, 0, 0, 0, 0},
				"1002": {12, 40, 60, 50, 0, 0, 0, 0, 1, 0, 0, 0, 600},
			},
		},
	}
}

func testNames() map[string]string {
	return map[string]string{"1001": "Fireball"}
}

func TestBuild_MapsPositions(t *testing.T) {
	snap, ok := Build(testSegment(), "Thrall", testNames(), captureTime)
	if !ok {
		t.Fatal("expected a snapshot for Thrall")
	}

	fb, ok := snap.Abilities["Fireball"]
	if !ok {
		t.Fatal("expected Fireball ability")
	}
	if fb.Hits != 30 || fb.Crits != 10 || fb.Misses != 2 || fb.Resists != 3 {
		t.Errorf("counters wrong: hits=%d crits=%d misses=%d resists=%d", fb.Hits, fb.Crits, fb.Misses, fb.Resists)
	}
	if fb.HitMin != 80 || fb.HitMax != 120 || fb.HitAvg != 100 {
		t.Errorf("hit magnitudes wrong: %v/%v/%v", fb.HitMin, fb.HitMax, fb.HitAvg)
	}
	if fb.CritMin != 160 || fb.CritMax != 240 || fb.CritAvg != 200 {
		t.Errorf("crit magnitudes wrong: %v/%v/%v", fb.CritMin, fb.CritMax, fb.CritAvg)
	}
	if fb.TotalDamage != 5000 {
		t.Errorf("total damage = %v, want 5000", fb.TotalDamage)
	}
	if fb.PartialResists != 0 || fb.ResistedDamage != 0 {
		t.Errorf("partial resist placeholders must stay zero, got %d/%v", fb.PartialResists, fb.ResistedDamage)
	}
}

func TestBuild_ShortRecordDefaultsToZero(t *testing.T) {
	snap, ok := Build(testSegment(), "Thrall", testNames(), captureTime)
	if !ok {
		t.Fatal("expected a snapshot")
	}
	// Record 1002 stops at totalDamage; everything after reads zero.
	ab, ok := snap.Abilities["Unknown #1002"]
	if !ok {
		t.Fatalf("expected synthetic name for unknown ability, have %v", keys(snap.Abilities))
	}
	if ab.Glances != 0 || ab.Blocks != 0 || ab.BlockAvg != 0 {
		t.Errorf("short record should default trailing positions to zero: %+v", ab)
	}
	if ab.TotalDamage != 600 {
		t.Errorf("total damage = %v, want 600", ab.TotalDamage)
	}
}

func TestBuild_TotalDamageInvariant(t *testing.T) {
	snap, ok := Build(testSegment(), "Thrall", testNames(), captureTime)
	if !ok {
		t.Fatal("expected a snapshot")
	}
	var sum float64
	for _, a := range snap.Abilities {
		sum += a.TotalDamage
	}
	if snap.TotalDamage != sum {
		t.Errorf("snapshot total %v != ability sum %v", snap.TotalDamage, sum)
	}
	wantDPS := sum / 45.0
	if math.Abs(snap.DPS-wantDPS) > 1e-9 {
		t.Errorf("dps = %v, want %v", snap.DPS, wantDPS)
	}
	if snap.Date != "2026-08-31" {
		t.Errorf("date = %s, want 2026-08-31", snap.Date)
	}
}

func TestBuild_NoActorData(t *testing.T) {
	if snap, ok := Build(testSegment(), "Jaina", testNames(), captureTime); ok {
		t.Fatalf("expected no snapshot for absent actor, got %+v", snap)
	}
}

func TestBuild_ZeroDurationMeansZeroDPS(t *testing.T) {
	seg := testSegment()
	seg.Duration = 0
	snap, ok := Build(seg, "Thrall", testNames(), captureTime)
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if snap.DPS != 0 {
		t.Errorf("dps = %v, want 0 for degenerate duration", snap.DPS)
	}
}

func keys(m map[string]*model.AbilityStats) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
