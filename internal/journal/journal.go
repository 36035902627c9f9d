// Package journal keeps a long-term record of accepted captures. The
// bounded history forgets anything beyond its retention window; the journal
// keeps one aggregate row per capture for out-of-band analysis until its
// own retention prunes it.
package journal

import "time"

// Entry is the aggregate row written for one accepted capture.
type Entry struct {
	Encounter   string
	Date        string
	CombatTime  float64
	TotalDamage float64
	DPS         float64
	Abilities   int
}

// Journal persists capture entries.
type Journal interface {
	Record(e *Entry) error
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// Noop is used when no journal is configured.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Record(_ *Entry) error { return nil }

func (n *Noop) Prune(_ time.Duration) (int64, error) { return 0, nil }

func (n *Noop) Close() error { return nil }
