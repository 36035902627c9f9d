// Package adapter translates the meter's positional ability records into
// fightlog snapshots. The meter exports fixed-width arrays with no field
// names; the position table below is the only place that knows the layout,
// so a format change upstream touches exactly one file.
package adapter

import (
	"fmt"
	"time"

	"fightlog/internal/model"
	"fightlog/internal/source"
)

// Positions of the counters inside one exported ability record.
const (
	posHits = iota
	posHitMin
	posHitMax
	posHitAvg
	posCrits
	posCritMin
	posCritMax
	posCritAvg
	posMisses
	posParries
	posDodges
	posResists
	posTotalDamage
	posGlances
	posGlanceMin
	posGlanceMax
	posGlanceAvg
	posBlocks
	posBlockMin
	posBlockMax
	posBlockAvg
)

// at reads one position, defaulting to zero when the record is short.
// The meter omits trailing zero counters.
func at(rec []float64, pos int) float64 {
	if pos < len(rec) {
		return rec[pos]
	}
	return 0
}

func count(rec []float64, pos int) int {
	v := at(rec, pos)
	if v < 0 {
		return 0
	}
	return int(v)
}

// Build translates one segment's records for the given actor into a
// FightSnapshot taken at the given instant. ok is false when the actor has
// no data in the segment. Build is a pure function of its inputs; the
// snapshot's TotalDamage always equals the sum of its ability damage.
func Build(seg source.Segment, actor string, names map[string]string, now time.Time) (*model.FightSnapshot, bool) {
	records := seg.Records[actor]
	if len(records) == 0 {
		return nil, false
	}

	snap := &model.FightSnapshot{
		Date:       now.Format(model.DateLayout),
		Timestamp:  now.Unix(),
		CombatTime: seg.Duration,
		Abilities:  make(map[string]*model.AbilityStats, len(records)),
	}

	for id, rec := range records {
		name, ok := names[id]
		if !ok || name == "" {
			// Unknown ability identity: keep the data under a synthetic
			// name rather than dropping it.
			name = fmt.Sprintf("Unknown #%s", id)
		}
		stats := abilityStats(rec)
		snap.Abilities[name] = stats
		snap.TotalDamage += stats.TotalDamage
	}

	if snap.CombatTime > 0 {
		snap.DPS = snap.TotalDamage / snap.CombatTime
	}
	return snap, true
}

func abilityStats(rec []float64) *model.AbilityStats {
	return &model.AbilityStats{
		Hits:        count(rec, posHits),
		HitMin:      at(rec, posHitMin),
		HitMax:      at(rec, posHitMax),
		HitAvg:      at(rec, posHitAvg),
		Crits:       count(rec, posCrits),
		CritMin:     at(rec, posCritMin),
		CritMax:     at(rec, posCritMax),
		CritAvg:     at(rec, posCritAvg),
		Misses:      count(rec, posMisses),
		Parries:     count(rec, posParries),
		Dodges:      count(rec, posDodges),
		Resists:     count(rec, posResists),
		TotalDamage: at(rec, posTotalDamage),
		Glances:     count(rec, posGlances),
		GlanceMin:   at(rec, posGlanceMin),
		GlanceMax:   at(rec, posGlanceMax),
		GlanceAvg:   at(rec, posGlanceAvg),
		Blocks:      count(rec, posBlocks),
		BlockMin:    at(rec, posBlockMin),
		BlockMax:    at(rec, posBlockMax),
		BlockAvg:    at(rec, posBlockAvg),
		// The meter reports no partial resist data; both stay zero until
		// it does.
		PartialResists: 0,
		ResistedDamage: 0,
	}
}
