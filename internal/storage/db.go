package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"matlist/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  inputDir TEXT NOT NULL,
  outputPath TEXT NOT NULL,
  docCount INTEGER NOT NULL,
  rawCount INTEGER NOT NULL,
  masterCount INTEGER NOT NULL,
  skippedCount INTEGER NOT NULL,
  durationMs REAL NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS documents (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  source TEXT NOT NULL,
  path TEXT NOT NULL,
  pages INTEGER NOT NULL,
  recordCount INTEGER NOT NULL,
  skippedCount INTEGER NOT NULL,
  error TEXT,
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_documents_runId ON documents(runId);

CREATE TABLE IF NOT EXISTS raw_records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  source TEXT NOT NULL,
  quantity REAL NOT NULL,
  units TEXT NOT NULL,
  size TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL,
  itemKey TEXT NOT NULL,
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_raw_records_runId ON raw_records(runId);

CREATE TABLE IF NOT EXISTS master_records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  position INTEGER NOT NULL,
  quantity REAL NOT NULL,
  units TEXT NOT NULL,
  size TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL,
  itemKey TEXT NOT NULL,
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_master_records_runId ON master_records(runId);

CREATE TABLE IF NOT EXISTS attachments (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  provider TEXT NOT NULL,
  messageId TEXT NOT NULL,
  filename TEXT NOT NULL,
  hash TEXT NOT NULL UNIQUE,
  storedPath TEXT NOT NULL,
  receivedAt TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertRun(traceID, inputDir, outputPath string, docCount, rawCount, masterCount, skipped int, took time.Duration) (int64, error) {
	res, err := d.conn.Exec(`
INSERT INTO runs (traceId, inputDir, outputPath, docCount, rawCount, masterCount, skippedCount, durationMs)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		traceID, inputDir, outputPath, docCount, rawCount, masterCount, skipped, float64(took.Milliseconds()))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (d *DB) InsertDocuments(runID int64, results []internal.DocumentResult) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
INSERT INTO documents (runId, source, path, pages, recordCount, skippedCount, error)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, res := range results {
		var docErr any
		if res.Err != "" {
			docErr = res.Err
		}
		if _, err := stmt.Exec(runID, res.Source, res.Path, res.Pages, len(res.Records), res.Skipped, docErr); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (d *DB) InsertRawRecords(runID int64, records []internal.RawRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
INSERT INTO raw_records (runId, source, quantity, units, size, description, itemKey)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(runID, r.Source, r.Quantity, r.Units, r.Size, r.Description, r.ItemKey); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (d *DB) InsertMasterRecords(runID int64, records []internal.MasterRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
INSERT INTO master_records (runId, position, quantity, units, size, description, itemKey)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range records {
		if _, err := stmt.Exec(runID, i, m.Quantity, m.Units, m.Size, m.Description, m.ItemKey); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (d *DB) GetRawRecords(runID int64) ([]internal.RawRecord, error) {
	rows, err := d.conn.Query(`
SELECT source, quantity, units, size, description, itemKey
FROM raw_records WHERE runId = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.RawRecord{}
	for rows.Next() {
		var r internal.RawRecord
		if err := rows.Scan(&r.Source, &r.Quantity, &r.Units, &r.Size, &r.Description, &r.ItemKey); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetMasterRecords returns a run's master list in its original sort order.
func (d *DB) GetMasterRecords(runID int64) ([]internal.MasterRecord, error) {
	rows, err := d.conn.Query(`
SELECT quantity, units, size, description, itemKey
FROM master_records WHERE runId = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.MasterRecord{}
	for rows.Next() {
		var m internal.MasterRecord
		if err := rows.Scan(&m.Quantity, &m.Units, &m.Size, &m.Description, &m.ItemKey); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	rows, err := d.conn.Query(`
SELECT id, traceId, inputDir, outputPath, docCount, rawCount, masterCount, skippedCount, createdAt
FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.RunRow{}
	for rows.Next() {
		var r internal.RunRow
		if err := rows.Scan(&r.ID, &r.TraceID, &r.InputDir, &r.OutputPath, &r.DocCount, &r.RawCount, &r.MasterCount, &r.Skipped, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) HasAttachment(hash string) (bool, error) {
	var one int
	err := d.conn.QueryRow(`SELECT 1 FROM attachments WHERE hash = ?`, hash).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *DB) InsertAttachment(att internal.StoredAttachment) error {
	_, err := d.conn.Exec(`
INSERT OR IGNORE INTO attachments (provider, messageId, filename, hash, storedPath, receivedAt)
VALUES (?, ?, ?, ?, ?, ?)`,
		att.Provider, att.MessageID, att.Filename, att.Hash, att.StoredPath, att.ReceivedAt)
	return err
}
