package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"fightlog/internal/model"
)

// load reads the database from a JSON file. A missing file yields a fresh
// empty database. Structures saved by older versions are migrated in
// place: absent config or bosses sections are backfilled without touching
// any snapshots that are present.
func load(path string) (*model.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewDatabase(), nil
		}
		return nil, err
	}
	var db model.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, err
	}
	migrate(&db)
	return &db, nil
}

func migrate(db *model.Database) {
	if db.Bosses == nil {
		db.Bosses = make(map[string][]*model.FightSnapshot)
	}
	if db.Config.KeepCount <= 0 {
		db.Config.KeepCount = model.DefaultKeepCount
	}
}

// save writes the database as indented JSON, creating the data directory
// on first use.
func save(path string, db *model.Database) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
