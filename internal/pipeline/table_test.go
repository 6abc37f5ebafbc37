package pipeline

import "testing"

func TestExtractRowsFromTable(t *testing.T) {
	table := [][]string{
		{"Quantity", "Units", "Size", "Description"},
		{"3", "EA", `1/2"`, "Ball Valve"},
		{"120", "LF", "2", "Type L Copper Tube"},
	}
	records, skipped := ExtractRowsFromTable(table, "doc-1")
	if len(records) != 2 || skipped != 0 {
		t.Fatalf("records=%d skipped=%d", len(records), skipped)
	}
	if records[0].Quantity != 3 || records[0].Units != "EA" || records[0].Description != "Ball Valve" {
		t.Fatalf("record 0: %+v", records[0])
	}
	if records[0].ItemKey != `ea | 1/2" | ball valve` {
		t.Fatalf("item key: %q", records[0].ItemKey)
	}
	if records[0].Source != "doc-1" {
		t.Fatalf("source: %q", records[0].Source)
	}
}

func TestExtractRowsFromTableHeaderVariants(t *testing.T) {
	// Substring match tolerates decorated headers; leftmost wins on duplicates.
	table := [][]string{
		{"Item Quantity (pcs)", "Units of Measure", "Pipe Size", "Size Description", "Description (alt)"},
		{"2", "EA", "3/4", "Gate Valve", "ignored"},
	}
	records, _ := ExtractRowsFromTable(table, "doc")
	if len(records) != 1 {
		t.Fatalf("records=%d", len(records))
	}
	// "size" resolves to column 2, "description" to column 3.
	if records[0].Size != "3/4" || records[0].Description != "Gate Valve" {
		t.Fatalf("record: %+v", records[0])
	}
}

func TestExtractRowsFromTableRejections(t *testing.T) {
	cases := []struct {
		name  string
		table [][]string
	}{
		{name: "empty", table: nil},
		{name: "header only", table: [][]string{{"Quantity", "Units", "Size", "Description"}}},
		{name: "no hints", table: [][]string{
			{"Part", "Count", "Dim", "Name"},
			{"1", "EA", "2", "Tee"},
		}},
		{name: "missing column", table: [][]string{
			{"Quantity", "Units", "Description"},
			{"1", "EA", "Tee"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records, _ := ExtractRowsFromTable(tc.table, "doc")
			if len(records) != 0 {
				t.Fatalf("records=%d", len(records))
			}
		})
	}
}

func TestExtractRowsFromTableRowSkips(t *testing.T) {
	table := [][]string{
		{"Quantity", "Units", "Size", "Description"},
		{"1", "EA"},                          // short row
		{"", "EA", "2", "Tee"},               // empty quantity
		{"2", "", "2", "Tee"},                // empty units
		{"2", "EA", "2", ""},                 // empty description
		{"n/a", "EA", "2", "Tee"},            // unparsable quantity
		{"4", "EA", "", "Street Ell"},        // empty size is fine
		{"0", "LF", "1", "Type M Tube"},      // zero quantity is fine
	}
	records, skipped := ExtractRowsFromTable(table, "doc")
	if len(records) != 2 {
		t.Fatalf("records=%d", len(records))
	}
	if skipped != 4 {
		t.Fatalf("skipped=%d", skipped)
	}
	if records[0].Size != "" || records[0].Description != "Street Ell" {
		t.Fatalf("record 0: %+v", records[0])
	}
	if records[1].Quantity != 0 {
		t.Fatalf("record 1: %+v", records[1])
	}
}
