package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"fightlog/internal/journal"
	"fightlog/internal/source"
	"fightlog/internal/watcher"
)

// NewWatchCommand runs the live capture loop against the meter's export.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Capture new kills from the meter's export as they happen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			if e.cfg.Actor == "" {
				return fmt.Errorf("actor is required for watch: set it in the config or FIGHTLOG_ACTOR")
			}
			return runWatch(e)
		},
	}
}

func runWatch(e *env) error {
	log.Printf("[INFO] fightlog watching for %s (profile %s)", e.cfg.Actor, e.cfg.Profile)

	// Init journal
	var jnl journal.Journal
	if e.cfg.Journal.SQLitePath != "" {
		sj, err := journal.OpenSQLite(e.cfg.Journal.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite journal failed, using noop: %v", err)
			jnl = journal.NewNoop()
		} else {
			jnl = sj
			defer sj.Close()
		}
	} else {
		jnl = journal.NewNoop()
	}

	src := source.NewFileSource(e.cfg.Source.ExportPath)
	session := &watcher.Session{Profile: e.cfg.Profile, Actor: e.cfg.Actor}
	w := watcher.New(src, e.store, jnl,
		session, time.Duration(e.cfg.Source.DebounceSeconds)*time.Second)

	if err := w.Prime(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Nightly maintenance: trim the journal, back up the database.
	c := cron.New(cron.WithSeconds())
	retention := time.Duration(e.cfg.Journal.RetentionDays) * 24 * time.Hour
	if _, err := c.AddFunc(e.cfg.MaintenanceCron, func() {
		if n, err := jnl.Prune(retention); err != nil {
			log.Printf("[ERROR] prune journal: %v", err)
		} else if n > 0 {
			log.Printf("[INFO] pruned %d journal entries", n)
		}
		if bak, err := e.store.Backup(); err != nil {
			log.Printf("[ERROR] backup database: %v", err)
		} else {
			log.Printf("[INFO] database backed up to %s", bak)
		}
	}); err != nil {
		return fmt.Errorf("register maintenance task: %w", err)
	}
	c.Start()
	defer c.Stop()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx, e.cfg.Source.ExportPath) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}
