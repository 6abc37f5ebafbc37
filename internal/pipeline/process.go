package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"matlist/internal"
	"matlist/internal/config"
	"matlist/internal/decoder"
	"matlist/internal/intake"
	"matlist/internal/storage"
)

// ErrNoRecords means every document came up empty; the run aborts and no
// workbook is written.
var ErrNoRecords = errors.New("no records extracted from any document")

type ProcessingService struct {
	db  *storage.DB
	cfg config.Config
}

// NewProcessingService wires the full consolidation run. db may be nil to
// skip run-history recording.
func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg}
}

type RunResult struct {
	RunID       int64
	TraceID     string
	Documents   int
	RawCount    int
	MasterCount int
	Skipped     int
	OutputPath  string
}

// Run discovers the input documents, extracts every page, aggregates the raw
// stream into the master list and writes the workbook. Per-row anomalies are
// absorbed during extraction; only the fatal conditions (missing input,
// nothing extracted) surface here.
func (s *ProcessingService) Run() (RunResult, error) {
	start := time.Now()

	paths, err := intake.DiscoverDocuments(s.cfg.InputDir)
	if err != nil {
		return RunResult{}, err
	}

	results := s.extractAll(paths)

	raw := []internal.RawRecord{}
	skipped := 0
	for _, res := range results {
		raw = append(raw, res.Records...)
		skipped += res.Skipped
	}
	if len(raw) == 0 {
		return RunResult{}, ErrNoRecords
	}

	master := Aggregate(raw)
	outputPath := s.cfg.OutputPath()
	if err := ExportWorkbook(master, raw, outputPath); err != nil {
		return RunResult{}, err
	}

	result := RunResult{
		TraceID:     traceID(),
		Documents:   len(results),
		RawCount:    len(raw),
		MasterCount: len(master),
		Skipped:     skipped,
		OutputPath:  outputPath,
	}

	if s.db != nil {
		runID, err := s.db.InsertRun(result.TraceID, s.cfg.InputDir, outputPath, len(results), len(raw), len(master), skipped, time.Since(start))
		if err != nil {
			return RunResult{}, err
		}
		if err := s.db.InsertDocuments(runID, results); err != nil {
			return RunResult{}, err
		}
		if err := s.db.InsertRawRecords(runID, raw); err != nil {
			return RunResult{}, err
		}
		if err := s.db.InsertMasterRecords(runID, master); err != nil {
			return RunResult{}, err
		}
		result.RunID = runID
	}

	return result, nil
}

// extractAll fans document extraction out over a bounded worker pool. Results
// are indexed by discovery position, so the raw stream keeps its order no
// matter which worker finishes first.
func (s *ProcessingService) extractAll(paths []string) []internal.DocumentResult {
	workers := s.cfg.ExtractWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	results := make([]internal.DocumentResult, len(paths))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = extractOne(paths[i])
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

// extractOne degrades gracefully: a document that fails to decode contributes
// zero records and carries the error into the run report.
func extractOne(path string) internal.DocumentResult {
	doc, err := decoder.Open(path)
	if err != nil {
		return internal.DocumentResult{Source: decoder.SourceName(path), Path: path, Err: err.Error()}
	}
	return ExtractDocument(doc)
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
