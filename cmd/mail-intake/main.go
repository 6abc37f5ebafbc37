package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"matlist/internal/config"
	"matlist/internal/intake"
	imapconnector "matlist/internal/intake/imap"
	"matlist/internal/pipeline"
	"matlist/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	conn, err := imapconnector.NewConnector(cfg)
	must(err)

	processor := pipeline.NewProcessingService(db, cfg)
	daemon := intake.NewDaemon(db, cfg, conn, func() error {
		res, err := processor.Run()
		if err != nil {
			return err
		}
		fmt.Printf("consolidated documents=%d master=%d output=%s\n", res.Documents, res.MasterCount, res.OutputPath)
		return nil
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	must(daemon.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
