package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"fightlog/internal/compare"
	"fightlog/internal/model"
	"fightlog/internal/resolver"
)

var (
	improvementColor = color.New(color.FgGreen)
	regressionColor  = color.New(color.FgRed)
)

// changeCell renders a diff's percentage change through the classification
// channel: green for improvements, red for regressions, plain otherwise.
func changeCell(d model.MetricDiff) string {
	s := Percent(d.ChangePct)
	switch d.Class {
	case model.ClassImprovement:
		return improvementColor.Sprint(s)
	case model.ClassRegression:
		return regressionColor.Sprint(s)
	default:
		return s
	}
}

func encounterNames(db *model.Database) []string {
	names := make([]string, 0, len(db.Bosses))
	for name := range db.Bosses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// Summary lists each encounter with its kill count, most recent kill and
// the DPS trend against the kill before it.
func Summary(w io.Writer, db *model.Database) {
	names := encounterNames(db)
	if len(names) == 0 {
		fmt.Fprintln(w, "No kills recorded yet.")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Encounter", "Kills", "Last Kill", "DPS", "Change"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	for _, name := range names {
		hist := db.Bosses[name]
		latest := hist[0]
		change := placeholder
		if len(hist) > 1 {
			change = changeCell(compare.Diff(hist[1].DPS, latest.DPS, model.HigherIsBetter))
		}
		t.AppendRow(table.Row{
			name,
			len(hist),
			ShortDate(latest.Date),
			Decimal(latest.DPS),
			change,
		})
	}
	t.Render()
}

// List prints every stored snapshot of every encounter.
func List(w io.Writer, db *model.Database) {
	names := encounterNames(db)
	if len(names) == 0 {
		fmt.Fprintln(w, "No kills recorded yet.")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Encounter", "#", "Date", "DPS", "Damage", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	for _, name := range names {
		for i, snap := range db.Bosses[name] {
			t.AppendRow(table.Row{
				name,
				i + 1,
				ShortDate(snap.Date),
				Decimal(snap.DPS),
				Number(snap.TotalDamage),
				Duration(snap.CombatTime),
			})
		}
	}
	t.Render()
}

// refLabel names one resolved snapshot for report headings.
func refLabel(res *resolver.Resolution) string {
	return fmt.Sprintf("%s #%d (%s)", res.Encounter, res.Index, ShortDate(res.Snapshot.Date))
}

// Show prints one snapshot in full, abilities ordered by damage.
func Show(w io.Writer, res *resolver.Resolution) {
	snap := res.Snapshot
	fmt.Fprintf(w, "%s\n", refLabel(res))
	fmt.Fprintf(w, "Damage: %s  DPS: %s  Duration: %s\n",
		Number(snap.TotalDamage), Decimal(snap.DPS), Duration(snap.CombatTime))

	type row struct {
		name  string
		stats *model.AbilityStats
	}
	rows := make([]row, 0, len(snap.Abilities))
	for name, stats := range snap.Abilities {
		rows = append(rows, row{name: name, stats: stats})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].stats.TotalDamage != rows[j].stats.TotalDamage {
			return rows[i].stats.TotalDamage > rows[j].stats.TotalDamage
		}
		return rows[i].name < rows[j].name
	})

	t := newTable(w)
	t.AppendHeader(table.Row{"Ability", "Damage", "Hits", "Crits", "Miss", "Resist", "Hit Avg", "Crit Avg"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.name,
			Number(r.stats.TotalDamage),
			r.stats.Hits,
			r.stats.Crits,
			r.stats.Misses,
			r.stats.Resists,
			Number(r.stats.HitAvg),
			Number(r.stats.CritAvg),
		})
	}
	t.Render()
}

// Comparison prints the aggregate diff of two resolved snapshots and, when
// provided, the per-ability breakdown.
func Comparison(w io.Writer, before, after *resolver.Resolution, agg *model.AggregateComparison, abilities []model.AbilityComparison) {
	fmt.Fprintf(w, "%s  vs  %s\n", refLabel(before), refLabel(after))

	t := newTable(w)
	t.AppendHeader(table.Row{"Metric", "Old", "New", "Change"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.AppendRows([]table.Row{
		{"DPS", Decimal(agg.DPS.Old), Decimal(agg.DPS.New), changeCell(agg.DPS)},
		{"Total Damage", Number(agg.TotalDamage.Old), Number(agg.TotalDamage.New), changeCell(agg.TotalDamage)},
		{"Hit Rate", Rate(agg.HitRate.Old), Rate(agg.HitRate.New), changeCell(agg.HitRate)},
		{"Crit Rate", Rate(agg.CritRate.Old), Rate(agg.CritRate.New), changeCell(agg.CritRate)},
		{"Resists", Number(agg.Resists.Old), Number(agg.Resists.New), changeCell(agg.Resists)},
		{"Resisted Damage", Number(agg.ResistedDamage.Old), Number(agg.ResistedDamage.New), changeCell(agg.ResistedDamage)},
		{"Combat Time", Duration(agg.OldCombatTime), Duration(agg.NewCombatTime), placeholder},
	})
	t.Render()

	if len(abilities) == 0 {
		return
	}

	at := newTable(w)
	at.AppendHeader(table.Row{"Ability", "Dmg Old", "Dmg New", "Change", "DPS Old", "DPS New"})
	at.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	for _, a := range abilities {
		at.AppendRow(table.Row{
			a.Name,
			Number(a.Damage.Old),
			Number(a.Damage.New),
			changeCell(a.Damage),
			Decimal(a.DPS.Old),
			Decimal(a.DPS.New),
		})
	}
	at.Render()
}
