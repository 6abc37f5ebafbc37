package intake

import (
	"context"
	"fmt"
	"time"

	"matlist/internal/config"
	"matlist/internal/storage"
)

// Daemon periodically pulls takeoff documents from the mailbox and, when new
// documents arrived, triggers a consolidation run via the injected runner.
type Daemon struct {
	db     *storage.DB
	cfg    config.Config
	conn   MailConnector
	runner func() error
}

func NewDaemon(db *storage.DB, cfg config.Config, conn MailConnector, runner func() error) *Daemon {
	return &Daemon{db: db, cfg: cfg, conn: conn, runner: runner}
}

func (d *Daemon) Run(ctx context.Context) error {
	for {
		if err := d.cycle(); err != nil {
			fmt.Printf("intake cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(d.cfg.IntakeIntervalSec) * time.Second):
		}
	}
}

func (d *Daemon) cycle() error {
	fetch := NewFetchService(d.db, d.cfg.InputDir, d.conn)
	result, err := fetch.FetchAndStore(d.cfg.IntakeLabel, d.cfg.IntakeFetchMax)
	if err != nil {
		return err
	}

	if result.Stored > 0 && d.cfg.IntakeAutoRun && d.runner != nil {
		if err := d.runner(); err != nil {
			return err
		}
	}

	fmt.Printf("intake cycle done fetched=%d stored=%d\n", result.Fetched, result.Stored)
	return nil
}
