// Package compare computes aggregate and per-ability deltas between two
// fight snapshots and classifies each change as improvement, regression or
// unchanged.
package compare

import (
	"sort"

	"fightlog/internal/model"
)

// Diff builds a metric diff from two absolute values. The percentage change
// is relative to the old value (zero when the old value is zero), and the
// classification follows the metric's direction: for damage-style metrics
// more is better, for lost-damage metrics less is.
func Diff(old, new float64, dir model.Direction) model.MetricDiff {
	var pct float64
	if old != 0 {
		pct = (new - old) / abs(old) * 100
	}
	return model.MetricDiff{
		Old:       old,
		New:       new,
		ChangePct: pct,
		Class:     classify(pct, dir),
	}
}

func classify(pct float64, dir model.Direction) model.Classification {
	switch {
	case pct == 0:
		return model.ClassUnchanged
	case (pct > 0) == (dir == model.HigherIsBetter):
		return model.ClassImprovement
	default:
		return model.ClassRegression
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Aggregate compares two snapshots as wholes. The second argument is the
// newer side; combat times are carried raw for context, never diffed.
func Aggregate(before, after *model.FightSnapshot) *model.AggregateComparison {
	return &model.AggregateComparison{
		DPS:            Diff(before.DPS, after.DPS, model.HigherIsBetter),
		TotalDamage:    Diff(before.TotalDamage, after.TotalDamage, model.HigherIsBetter),
		HitRate:        Diff(hitRate(before), hitRate(after), model.HigherIsBetter),
		CritRate:       Diff(critRate(before), critRate(after), model.HigherIsBetter),
		Resists:        Diff(float64(before.TotalResists()), float64(after.TotalResists()), model.LowerIsBetter),
		ResistedDamage: Diff(before.TotalResistedDamage(), after.TotalResistedDamage(), model.LowerIsBetter),
		OldCombatTime:  before.CombatTime,
		NewCombatTime:  after.CombatTime,
	}
}

// hitRate is the share of landed swings among all resolvable outcomes,
// in percent. Zero when nothing was attempted.
func hitRate(s *model.FightSnapshot) float64 {
	hits := s.TotalHits() + s.TotalCrits()
	den := hits + s.TotalMisses() + s.TotalResists()
	if den == 0 {
		return 0
	}
	return float64(hits) / float64(den) * 100
}

// critRate is the share of crits among landed swings, in percent.
func critRate(s *model.FightSnapshot) float64 {
	landed := s.TotalHits() + s.TotalCrits()
	if landed == 0 {
		return 0
	}
	return float64(s.TotalCrits()) / float64(landed) * 100
}

var zeroAbility model.AbilityStats

// Abilities compares the two snapshots ability by ability over the union of
// ability names. An ability missing on one side reads as all-zero there.
// The result is ordered by descending damage in the newer snapshot; for
// abilities the newer snapshot no longer has, the older side's damage
// decides the rank.
func Abilities(before, after *model.FightSnapshot) []model.AbilityComparison {
	type ranked struct {
		cmp  model.AbilityComparison
		rank float64
	}

	names := make(map[string]struct{}, len(before.Abilities)+len(after.Abilities))
	for name := range before.Abilities {
		names[name] = struct{}{}
	}
	for name := range after.Abilities {
		names[name] = struct{}{}
	}

	rows := make([]ranked, 0, len(names))
	for name := range names {
		b, inBefore := before.Abilities[name]
		a, inAfter := after.Abilities[name]
		if !inBefore {
			b = &zeroAbility
		}
		if !inAfter {
			a = &zeroAbility
		}

		cmp := model.AbilityComparison{
			Name:   name,
			Damage: Diff(b.TotalDamage, a.TotalDamage, model.HigherIsBetter),
			DPS:    Diff(abilityDPS(b, before), abilityDPS(a, after), model.HigherIsBetter),
			Hits:   Diff(float64(b.Hits), float64(a.Hits), model.HigherIsBetter),
			Crits:  Diff(float64(b.Crits), float64(a.Crits), model.HigherIsBetter),
		}

		rank := a.TotalDamage
		if !inAfter {
			rank = b.TotalDamage
		}
		rows = append(rows, ranked{cmp: cmp, rank: rank})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].rank != rows[j].rank {
			return rows[i].rank > rows[j].rank
		}
		return rows[i].cmp.Name < rows[j].cmp.Name
	})

	out := make([]model.AbilityComparison, len(rows))
	for i, r := range rows {
		out[i] = r.cmp
	}
	return out
}

func abilityDPS(a *model.AbilityStats, snap *model.FightSnapshot) float64 {
	if snap.CombatTime <= 0 {
		return 0
	}
	return a.TotalDamage / snap.CombatTime
}
