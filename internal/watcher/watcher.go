// Package watcher drives live capture from the meter's export file. A
// write to the export is the "activity ended" signal; the actual capture
// check runs after a debounce delay so the meter can finish finalizing its
// segment before being read.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"fightlog/internal/adapter"
	"fightlog/internal/history"
	"fightlog/internal/journal"
	"fightlog/internal/source"
)

// Session carries the capture state that would otherwise be ambient: whose
// records to read and how much of the export was already seen. Passing it
// explicitly keeps concurrent test sessions independent.
type Session struct {
	Profile      string
	Actor        string
	SeenSegments int
}

// Watcher schedules and runs capture checks.
type Watcher struct {
	src      source.Source
	store    *history.Store
	journal  journal.Journal
	session  *Session
	debounce time.Duration
	now      func() time.Time

	mu       sync.Mutex
	pending  *time.Timer
	disabled bool
}

// New creates a watcher. The journal may be a Noop.
func New(src source.Source, store *history.Store, jnl journal.Journal, session *Session, debounce time.Duration) *Watcher {
	return &Watcher{
		src:      src,
		store:    store,
		journal:  jnl,
		session:  session,
		debounce: debounce,
		now:      time.Now,
	}
}

// Prime performs the startup availability check and seeds the session's
// segment cursor so segments recorded before fightlog started are not
// captured retroactively. An unavailable source is reported once here;
// afterwards capture stays disabled without further noise.
func (w *Watcher) Prime() error {
	exp, err := w.src.Read()
	if err != nil {
		if errors.Is(err, source.ErrUnavailable) {
			log.Printf("[WARN] %v — capture disabled", err)
			w.mu.Lock()
			w.disabled = true
			w.mu.Unlock()
			return nil
		}
		return fmt.Errorf("prime source: %w", err)
	}
	w.session.SeenSegments = len(exp.Segments)
	log.Printf("[INFO] source %s ready, %d existing segments", w.src.Name(), w.session.SeenSegments)
	return nil
}

// Signal notes an "activity ended" event. The capture check fires once
// after the debounce delay; a signal arriving while a check is already
// pending resets the delay instead of stacking a second callback.
func (w *Watcher) Signal() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.disabled {
		return
	}
	if w.pending != nil {
		w.pending.Reset(w.debounce)
		return
	}
	w.pending = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		w.pending = nil
		w.mu.Unlock()
		w.check()
	})
}

// check is the deferred capture pass: read the export once, capture every
// newly finished named segment for the session's actor, move the cursor.
func (w *Watcher) check() {
	exp, err := w.src.Read()
	if err != nil {
		// The source was there at startup; treat this as transient and
		// wait for the next signal.
		log.Printf("[WARN] read export: %v", err)
		return
	}

	segs := exp.Segments
	if len(segs) < w.session.SeenSegments {
		// The meter was reset; realign without capturing anything.
		log.Printf("[INFO] segment count dropped (%d -> %d), meter reset assumed", w.session.SeenSegments, len(segs))
		w.session.SeenSegments = len(segs)
		return
	}

	for _, seg := range segs[w.session.SeenSegments:] {
		w.captureSegment(seg, exp.AbilityNames)
	}
	w.session.SeenSegments = len(segs)
}

func (w *Watcher) captureSegment(seg source.Segment, names map[string]string) {
	if seg.Name == "" {
		return // unnamed trash segment
	}
	snap, ok := adapter.Build(seg, w.session.Actor, names, w.now())
	if !ok {
		return
	}
	if err := w.store.Capture(seg.Name, snap); err != nil {
		if errors.Is(err, history.ErrNotSignificant) {
			log.Printf("[INFO] %s: no damage recorded, skipping", seg.Name)
			return
		}
		log.Printf("[ERROR] capture %s: %v", seg.Name, err)
		return
	}
	log.Printf("[INFO] captured %s: %.0f damage, %.1f dps over %.1fs",
		seg.Name, snap.TotalDamage, snap.DPS, snap.CombatTime)

	if err := w.journal.Record(&journal.Entry{
		Encounter:   seg.Name,
		Date:        snap.Date,
		CombatTime:  snap.CombatTime,
		TotalDamage: snap.TotalDamage,
		DPS:         snap.DPS,
		Abilities:   len(snap.Abilities),
	}); err != nil {
		log.Printf("[ERROR] journal capture: %v", err)
	}
}

// Run watches the export file until ctx is cancelled. The parent directory
// is watched because meters typically replace the file on write.
func (w *Watcher) Run(ctx context.Context, exportPath string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fs watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(exportPath)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	base := filepath.Base(exportPath)
	log.Printf("[INFO] watching %s", exportPath)

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.Signal()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("[WARN] fs watcher: %v", err)
		}
	}
}

// cancelPending drops a not-yet-fired capture check. A capture lost on
// shutdown is fine: the meter keeps its segment until the next run reads it.
func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
}
