package journal

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite persists capture entries to a SQLite database.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens (or creates) the journal database and runs migrations.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external analysis tools can read while the watcher writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	j := &SQLite{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite journal opened: %s", path)
	return j, nil
}

func (j *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS captures (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			encounter    TEXT NOT NULL,
			date         TEXT NOT NULL,
			combat_time  REAL,
			total_damage REAL,
			dps          REAL,
			abilities    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_captures_ts ON captures(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_captures_encounter ON captures(encounter)`,
	}
	for _, s := range stmts {
		if _, err := j.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (j *SQLite) Record(e *Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.Exec(`INSERT INTO captures
		(timestamp, encounter, date, combat_time, total_damage, dps, abilities)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), e.Encounter, e.Date,
		e.CombatTime, e.TotalDamage, e.DPS, e.Abilities,
	)
	return err
}

// Prune removes entries older than the given age and reports how many went.
func (j *SQLite) Prune(olderThan time.Duration) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).Unix()
	res, err := j.db.Exec(`DELETE FROM captures WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (j *SQLite) Close() error {
	log.Println("[INFO] closing sqlite journal")
	return j.db.Close()
}
