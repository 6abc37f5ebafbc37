package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"matlist/internal/config"
	"matlist/internal/decoder"
	"matlist/internal/intake"
	imapconnector "matlist/internal/intake/imap"
	"matlist/internal/pipeline"
	"matlist/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input directory (overrides INPUT_DIR)")
		output := fs.String("output", "", "output xlsx path (overrides OUTPUT_DIR/OUTPUT_FILE)")
		noDB := fs.Bool("no-db", false, "do not record the run")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) != "" {
			cfg.InputDir = *input
		}
		if strings.TrimSpace(*output) != "" {
			cfg.OutputDir = filepath.Dir(*output)
			cfg.OutputFile = filepath.Base(*output)
		}

		var db *storage.DB
		if !*noDB {
			db, err = storage.Open(cfg.DBPath)
			must(err)
			defer db.Close()
		}

		svc := pipeline.NewProcessingService(db, cfg)
		res, err := svc.Run()
		must(err)
		fmt.Printf("run %s done documents=%d raw=%d master=%d skipped=%d\n",
			res.TraceID, res.Documents, res.RawCount, res.MasterCount, res.Skipped)
		fmt.Printf("output written to %s\n", res.OutputPath)
	case "extract":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "document to extract")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}

		doc, err := decoder.Open(*file)
		must(err)
		res := pipeline.ExtractDocument(doc)
		for _, r := range res.Records {
			fmt.Printf("%-10g %-4s %-14s %s\n", r.Quantity, r.Units, r.Size, r.Description)
		}
		fmt.Printf("extracted %d records from %d pages (skipped %d rows)\n", len(res.Records), res.Pages, res.Skipped)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		runID := fs.Int64("runId", 0, "run to re-export")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *runID == 0 || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--runId and --out are required"))
		}

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		master, err := db.GetMasterRecords(*runID)
		must(err)
		if len(master) == 0 {
			must(fmt.Errorf("no records for runId=%d", *runID))
		}
		raw, err := db.GetRawRecords(*runID)
		must(err)
		must(pipeline.ExportWorkbook(master, raw, *out))
		fmt.Printf("exported %d master rows to %s\n", len(master), *out)
	case "runs:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max runs to list")
		_ = fs.Parse(os.Args[2:])

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		runs, err := db.ListRuns(*limit)
		must(err)
		for _, r := range runs {
			fmt.Printf("%-4d %s documents=%d raw=%d master=%d skipped=%d %s\n",
				r.ID, r.TraceID, r.DocCount, r.RawCount, r.MasterCount, r.Skipped, r.CreatedAt)
		}
	case "mail:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		label := fs.String("label", cfg.IntakeLabel, "mailbox/label")
		max := fs.Int("max", cfg.IntakeFetchMax, "max messages")
		_ = fs.Parse(os.Args[2:])

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		conn, err := imapconnector.NewConnector(cfg)
		must(err)
		fetch := intake.NewFetchService(db, cfg.InputDir, conn)
		result, err := fetch.FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("mail fetch done fetched=%d stored=%d\n", result.Fetched, result.Stored)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: matlist <command>")
	fmt.Println("commands:")
	fmt.Println("  run [--input=dir] [--output=path.xlsx] [--no-db]")
	fmt.Println("  extract --file=document.pdf")
	fmt.Println("  export:xlsx --runId=1 --out=./out/result.xlsx")
	fmt.Println("  runs:list [--limit=20]")
	fmt.Println("  mail:fetch [--label=INBOX] [--max=20]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
