package storage

import (
	"path/filepath"
	"testing"
	"time"

	"matlist/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRunRoundTrip(t *testing.T) {
	db := openTestDB(t)

	runID, err := db.InsertRun("trace-1", "/in", "/out/master.xlsx", 2, 3, 2, 1, 150*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	raw := []internal.RawRecord{
		{Source: "floor1", Quantity: 3, Units: "EA", Size: "1/2", Description: "Ball Valve", ItemKey: "ea | 1/2 | ball valve"},
		{Source: "floor2", Quantity: 3, Units: "EA", Size: "1/2", Description: "Ball Valve", ItemKey: "ea | 1/2 | ball valve"},
		{Source: "floor1", Quantity: 20, Units: "LF", Size: "2", Description: "Type L Copper Tube", ItemKey: "lf | 2 | type l copper tube"},
	}
	if err := db.InsertRawRecords(runID, raw); err != nil {
		t.Fatal(err)
	}

	master := []internal.MasterRecord{
		{Quantity: 20, Units: "LF", Size: "2", Description: "Type L Copper Tube", ItemKey: "lf | 2 | type l copper tube"},
		{Quantity: 6, Units: "EA", Size: "1/2", Description: "Ball Valve", ItemKey: "ea | 1/2 | ball valve"},
	}
	if err := db.InsertMasterRecords(runID, master); err != nil {
		t.Fatal(err)
	}

	gotRaw, err := db.GetRawRecords(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotRaw) != 3 || gotRaw[0].Source != "floor1" {
		t.Fatalf("raw: %+v", gotRaw)
	}

	gotMaster, err := db.GetMasterRecords(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotMaster) != 2 || gotMaster[0].Units != "LF" || gotMaster[1].Quantity != 6 {
		t.Fatalf("master: %+v", gotMaster)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].TraceID != "trace-1" || runs[0].Skipped != 1 {
		t.Fatalf("runs: %+v", runs)
	}
}

func TestAttachmentDedup(t *testing.T) {
	db := openTestDB(t)

	seen, err := db.HasAttachment("h1")
	if err != nil || seen {
		t.Fatalf("seen=%v err=%v", seen, err)
	}

	att := internal.StoredAttachment{Provider: "imap", MessageID: "<m1>", Filename: "takeoff.pdf", Hash: "h1", StoredPath: "/in/x.pdf"}
	if err := db.InsertAttachment(att); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertAttachment(att); err != nil {
		t.Fatal(err)
	}

	seen, err = db.HasAttachment("h1")
	if err != nil || !seen {
		t.Fatalf("seen=%v err=%v", seen, err)
	}
}
