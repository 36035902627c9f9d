// Package history owns the bounded per-encounter snapshot store and its
// on-disk database file.
package history

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"fightlog/internal/model"
	"fightlog/internal/resolver"
)

var (
	// ErrNotSignificant marks a capture that carries no damage; such
	// snapshots are never persisted.
	ErrNotSignificant = errors.New("capture carries no damage")
	// ErrNotLoaded marks store access before a database was loaded.
	ErrNotLoaded = errors.New("database not loaded")
	// ErrInvalidKeepCount rejects a non-positive retention bound; the
	// prior value stays in effect.
	ErrInvalidKeepCount = errors.New("keep count must be positive")
)

// Store wraps one profile's database with atomic, save-on-mutation
// operations. There is no concurrent writer in practice; the lock just
// guarantees one logical mutation completes before the next begins.
type Store struct {
	mu   sync.Mutex
	db   *model.Database
	path string
}

// Open loads (or lazily creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Database exposes the loaded database for read-only use (resolution,
// rendering). Callers must not mutate it.
func (s *Store) Database() *model.Database {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db
}

// KeepCount returns the current retention bound.
func (s *Store) KeepCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Config.KeepCount
}

// Capture inserts a snapshot at the front of the encounter's history and
// prunes the tail beyond the retention bound, oldest first. Zero-damage
// snapshots are rejected and stored history is left untouched.
func (s *Store) Capture(encounter string, snap *model.FightSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return ErrNotLoaded
	}
	if snap == nil || snap.TotalDamage <= 0 {
		return ErrNotSignificant
	}

	hist := append([]*model.FightSnapshot{snap}, s.db.Bosses[encounter]...)
	if keep := s.db.Config.KeepCount; len(hist) > keep {
		hist = hist[:keep]
	}
	s.db.Bosses[encounter] = hist

	return s.save()
}

// Delete removes exactly one snapshot, resolved through the same reference
// grammar the query commands use. Later entries shift up; no gaps remain.
func (s *Store) Delete(ref string) (*resolver.Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, ErrNotLoaded
	}
	res, err := resolver.Resolve(s.db, ref)
	if err != nil {
		return nil, err
	}

	hist := s.db.Bosses[res.Encounter]
	i := res.Index - 1
	hist = append(hist[:i], hist[i+1:]...)
	if len(hist) == 0 {
		delete(s.db.Bosses, res.Encounter)
	} else {
		s.db.Bosses[res.Encounter] = hist
	}

	if err := s.save(); err != nil {
		return nil, err
	}
	return res, nil
}

// SetKeepCount updates the retention bound for future captures only.
// Histories already longer than the new bound are left alone until their
// encounter's next capture prunes them; there is no eager re-prune across
// the whole database.
func (s *Store) SetKeepCount(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return ErrNotLoaded
	}
	if n <= 0 {
		return ErrInvalidKeepCount
	}
	s.db.Config.KeepCount = n
	return s.save()
}

// Backup writes a copy of the database next to the live file and returns
// its path.
func (s *Store) Backup() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return "", ErrNotLoaded
	}
	bak := s.path + ".bak"
	if err := save(bak, s.db); err != nil {
		return "", fmt.Errorf("backup database: %w", err)
	}
	return bak, nil
}

func (s *Store) save() error {
	if err := save(s.path, s.db); err != nil {
		log.Printf("[ERROR] save database: %v", err)
		return err
	}
	return nil
}
