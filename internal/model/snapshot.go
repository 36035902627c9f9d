// Package model defines the data shapes shared across fightlog.
package model

// DateLayout is the canonical calendar-day format used everywhere a
// snapshot date is stored or compared.
const DateLayout = "2006-01-02"

// DefaultKeepCount is the retention bound applied to a freshly created
// database.
const DefaultKeepCount = 3

// AbilityStats holds the per-ability counters of one snapshot. The counters
// mirror the meter's exported record positions; PartialResists and
// ResistedDamage are always zero because the meter itself never fills them.
type AbilityStats struct {
	Hits           int     `json:"hits"`
	HitMin         float64 `json:"hit_min"`
	HitMax         float64 `json:"hit_max"`
	HitAvg         float64 `json:"hit_avg"`
	Crits          int     `json:"crits"`
	CritMin        float64 `json:"crit_min"`
	CritMax        float64 `json:"crit_max"`
	CritAvg        float64 `json:"crit_avg"`
	Misses         int     `json:"misses"`
	Parries        int     `json:"parries"`
	Dodges         int     `json:"dodges"`
	Resists        int     `json:"resists"`
	TotalDamage    float64 `json:"total_damage"`
	Glances        int     `json:"glances"`
	GlanceMin      float64 `json:"glance_min"`
	GlanceMax      float64 `json:"glance_max"`
	GlanceAvg      float64 `json:"glance_avg"`
	Blocks         int     `json:"blocks"`
	BlockMin       float64 `json:"block_min"`
	BlockMax       float64 `json:"block_max"`
	BlockAvg       float64 `json:"block_avg"`
	PartialResists int     `json:"partial_resists"`
	ResistedDamage float64 `json:"resisted_damage"`
}

// FightSnapshot is one captured encounter attempt for one observer.
// Snapshots are immutable once stored; Timestamp is informational only and
// never used to re-sort a history.
type FightSnapshot struct {
	Date        string                   `json:"date"`
	Timestamp   int64                    `json:"timestamp"`
	CombatTime  float64                  `json:"combat_time"`
	TotalDamage float64                  `json:"total_damage"`
	DPS         float64                  `json:"dps"`
	Abilities   map[string]*AbilityStats `json:"abilities"`
}

// TotalHits sums hit counts across all abilities.
func (s *FightSnapshot) TotalHits() int { return s.sum(func(a *AbilityStats) int { return a.Hits }) }

// TotalCrits sums crit counts across all abilities.
func (s *FightSnapshot) TotalCrits() int { return s.sum(func(a *AbilityStats) int { return a.Crits }) }

// TotalMisses sums miss counts across all abilities.
func (s *FightSnapshot) TotalMisses() int {
	return s.sum(func(a *AbilityStats) int { return a.Misses })
}

// TotalResists sums resist counts across all abilities.
func (s *FightSnapshot) TotalResists() int {
	return s.sum(func(a *AbilityStats) int { return a.Resists })
}

// TotalResistedDamage sums resisted damage across all abilities.
func (s *FightSnapshot) TotalResistedDamage() float64 {
	var total float64
	for _, a := range s.Abilities {
		total += a.ResistedDamage
	}
	return total
}

func (s *FightSnapshot) sum(pick func(*AbilityStats) int) int {
	var total int
	for _, a := range s.Abilities {
		total += pick(a)
	}
	return total
}

// DatabaseConfig holds the per-profile retention settings.
type DatabaseConfig struct {
	KeepCount int `json:"keep_count"`
}

// Database maps encounter names (case-sensitive, as the meter reports them)
// to their bounded snapshot histories. Index 0 of a history is the most
// recent kill.
type Database struct {
	Config DatabaseConfig              `json:"config"`
	Bosses map[string][]*FightSnapshot `json:"bosses"`
}

// NewDatabase returns an empty database with default retention.
func NewDatabase() *Database {
	return &Database{
		Config: DatabaseConfig{KeepCount: DefaultKeepCount},
		Bosses: make(map[string][]*FightSnapshot),
	}
}

// History returns the stored snapshots for an encounter, newest first.
func (d *Database) History(name string) []*FightSnapshot {
	return d.Bosses[name]
}
