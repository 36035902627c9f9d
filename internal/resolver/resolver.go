// Package resolver maps user-typed fight references onto stored snapshots.
//
// A reference is an encounter name, optionally followed by a 1-based
// recency index ("Lucifron-2") or a date ("Lucifron-2026-08-31",
// "Lucifron-Aug-31", "Lucifron-august-31"). The grammar is a fixed list of
// independent parse attempts tried in precedence order; index parsing runs
// before date parsing because both share the separator character.
package resolver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fightlog/internal/model"
)

const sep = "-"

// ErrInvalidIdentifier is returned when no grammar rule accepts the
// reference.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// NoDataError reports a reference that parsed cleanly but matched no stored
// snapshot. The message is user-facing and must be surfaced verbatim.
type NoDataError struct {
	msg string
}

func (e *NoDataError) Error() string { return e.msg }

func noData(format string, args ...any) error {
	return &NoDataError{msg: fmt.Sprintf(format, args...)}
}

// Resolution identifies one stored snapshot. Index is 1-based; 1 is the
// most recent kill.
type Resolution struct {
	Encounter string
	Index     int
	Snapshot  *model.FightSnapshot
}

// attempt tries one grammar rule. matched reports whether the rule claimed
// the reference; only a matched rule's result (or error) is used.
type attempt func(db *model.Database, ref string, now time.Time) (res *Resolution, matched bool, err error)

var grammar = []attempt{
	matchExactName,
	matchIndex,
	matchDate,
}

// Resolve parses ref against the database and returns the snapshot it
// names, or a descriptive error. It never mutates the database.
func Resolve(db *model.Database, ref string) (*Resolution, error) {
	return resolveAt(db, ref, time.Now())
}

func resolveAt(db *model.Database, ref string, now time.Time) (*Resolution, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || db == nil {
		return nil, ErrInvalidIdentifier
	}
	for _, try := range grammar {
		res, matched, err := try(db, ref, now)
		if !matched {
			continue
		}
		return res, err
	}
	return nil, ErrInvalidIdentifier
}

// matchExactName resolves a bare encounter name to its most recent kill.
// It always claims references without a separator, so unknown plain names
// get a "no kills" message instead of falling through.
func matchExactName(db *model.Database, ref string, _ time.Time) (*Resolution, bool, error) {
	if hist := db.History(ref); len(hist) > 0 {
		return &Resolution{Encounter: ref, Index: 1, Snapshot: hist[0]}, true, nil
	}
	if !strings.Contains(ref, sep) {
		return nil, true, noData("no kills recorded for %s", ref)
	}
	return nil, false, nil
}

// matchIndex resolves "<name>-<N>" to the N-th most recent kill. The split
// is on the last separator only; the rule declines when the leading name
// has no history, which lets date suffixes ending in digits fall through.
func matchIndex(db *model.Database, ref string, _ time.Time) (*Resolution, bool, error) {
	i := strings.LastIndex(ref, sep)
	if i <= 0 || i == len(ref)-1 {
		return nil, false, nil
	}
	name, tok := ref[:i], ref[i+1:]
	n, err := strconv.Atoi(tok)
	if err != nil || n <= 0 {
		return nil, false, nil
	}
	hist := db.History(name)
	if len(hist) == 0 {
		return nil, false, nil
	}
	if n > len(hist) {
		return nil, true, noData("no kill #%d (have %d)", n, len(hist))
	}
	return &Resolution{Encounter: name, Index: n, Snapshot: hist[n-1]}, true, nil
}

// matchDate resolves "<name>-YYYY-MM-DD" and "<name>-<Month>-<Day>" (current
// year assumed) to the first stored snapshot on that calendar day.
func matchDate(db *model.Database, ref string, now time.Time) (*Resolution, bool, error) {
	if name, date, ok := splitFullDate(ref); ok {
		return findByDate(db, name, date)
	}
	if name, date, ok := splitMonthDay(ref, now); ok {
		return findByDate(db, name, date)
	}
	return nil, false, nil
}

func findByDate(db *model.Database, name, date string) (*Resolution, bool, error) {
	for i, snap := range db.History(name) {
		if snap.Date == date {
			return &Resolution{Encounter: name, Index: i + 1, Snapshot: snap}, true, nil
		}
	}
	return nil, true, noData("no kill on %s", date)
}

// splitFullDate peels a trailing YYYY-MM-DD off the reference.
func splitFullDate(ref string) (name, date string, ok bool) {
	parts := strings.Split(ref, sep)
	if len(parts) < 4 {
		return "", "", false
	}
	tail := strings.Join(parts[len(parts)-3:], sep)
	if len(parts[len(parts)-3]) != 4 {
		return "", "", false
	}
	if _, err := time.Parse(model.DateLayout, tail); err != nil {
		return "", "", false
	}
	name = strings.Join(parts[:len(parts)-3], sep)
	if name == "" {
		return "", "", false
	}
	return name, tail, true
}

// splitMonthDay peels a trailing <Month>-<Day> off the reference, assuming
// the current year. Invalid month tokens simply decline, so the reference
// falls through to the invalid-identifier error.
func splitMonthDay(ref string, now time.Time) (name, date string, ok bool) {
	parts := strings.Split(ref, sep)
	if len(parts) < 3 {
		return "", "", false
	}
	month, ok := monthNumber(parts[len(parts)-2])
	if !ok {
		return "", "", false
	}
	day, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || day < 1 || day > 31 {
		return "", "", false
	}
	name = strings.Join(parts[:len(parts)-2], sep)
	if name == "" {
		return "", "", false
	}
	d := time.Date(now.Year(), month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		// time.Date normalized an impossible day (Feb-31 and friends).
		return "", "", false
	}
	return name, d.Format(model.DateLayout), true
}

// months maps both full month names and 3-letter abbreviations (lowercase)
// to their number.
var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

func monthNumber(tok string) (time.Month, bool) {
	m, ok := months[strings.ToLower(tok)]
	return m, ok
}
