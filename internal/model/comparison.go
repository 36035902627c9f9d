package model

// Classification labels the direction-aware outcome of a metric change.
// Presentation (color, markup) is the render layer's business; the engine
// only ever emits these values.
type Classification string

const (
	ClassImprovement Classification = "improvement"
	ClassRegression  Classification = "regression"
	ClassUnchanged   Classification = "unchanged"
)

// Direction states which way a metric should move to count as an
// improvement.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// MetricDiff carries both absolute values of a metric, the relative change
// and its classification.
type MetricDiff struct {
	Old       float64
	New       float64
	ChangePct float64
	Class     Classification
}

// AggregateComparison is the whole-fight comparison of two snapshots.
// Combat times are carried raw; they are context, not a diffed metric.
type AggregateComparison struct {
	DPS            MetricDiff
	TotalDamage    MetricDiff
	HitRate        MetricDiff
	CritRate       MetricDiff
	Resists        MetricDiff
	ResistedDamage MetricDiff
	OldCombatTime  float64
	NewCombatTime  float64
}

// AbilityComparison is the per-ability breakdown entry for one ability name
// appearing in either snapshot. A side where the ability is absent reads as
// all-zero.
type AbilityComparison struct {
	Name   string
	Damage MetricDiff
	DPS    MetricDiff
	Hits   MetricDiff
	Crits  MetricDiff
}
