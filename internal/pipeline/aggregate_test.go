package pipeline

import (
	"testing"

	"matlist/internal"
	"matlist/internal/util"
)

func rec(source string, qty float64, units, size, desc string) internal.RawRecord {
	return internal.RawRecord{
		Source:      source,
		Quantity:    qty,
		Units:       units,
		Size:        size,
		Description: desc,
		ItemKey:     util.MakeItemKey(size, desc, units),
	}
}

func TestAggregateSums(t *testing.T) {
	records := []internal.RawRecord{
		rec("doc-a", 3, "EA", `1/2"`, "Ball Valve"),
		rec("doc-b", 3, "EA", `1/2"`, "Ball Valve"),
		rec("doc-a", 10, "LF", "2", "Type L Copper Tube"),
	}
	master := Aggregate(records)
	if len(master) != 2 {
		t.Fatalf("len=%d", len(master))
	}

	byKey := map[string]internal.MasterRecord{}
	for _, m := range master {
		byKey[m.ItemKey] = m
	}
	if got := byKey[`ea | 1/2" | ball valve`].Quantity; got != 6 {
		t.Fatalf("summed quantity=%v", got)
	}
	if got := byKey["lf | 2 | type l copper tube"].Quantity; got != 10 {
		t.Fatalf("tube quantity=%v", got)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	forward := []internal.RawRecord{
		rec("a", 1, "EA", "1", "Tee"),
		rec("b", 2, "EA", "1", "Tee"),
		rec("c", 4, "EA", "1", "Tee"),
	}
	reversed := []internal.RawRecord{forward[2], forward[1], forward[0]}

	m1 := Aggregate(forward)
	m2 := Aggregate(reversed)
	if len(m1) != 1 || len(m2) != 1 {
		t.Fatalf("len=%d/%d", len(m1), len(m2))
	}
	if m1[0].Quantity != 7 || m2[0].Quantity != 7 {
		t.Fatalf("quantities %v %v", m1[0].Quantity, m2[0].Quantity)
	}
}

func TestAggregateSortOrder(t *testing.T) {
	records := []internal.RawRecord{
		rec("doc", 1, "XX", "1", "Whatever"),
		rec("doc", 1, "EA", "2", "Ball Valve"),
		rec("doc", 1, "EA", "1", "Ball Valve"),
		rec("doc", 1, "EA", "1", "Adapter"),
		rec("doc", 1, "LF", "¾", "Type L Copper Tube"),
		rec("doc", 1, "LF", "2", "Type L Copper Tube"),
	}
	master := Aggregate(records)

	got := make([]string, 0, len(master))
	for _, m := range master {
		got = append(got, m.Units+" "+m.Size+" "+m.Description)
	}
	want := []string{
		"LF ¾ Type L Copper Tube",
		"LF 2 Type L Copper Tube",
		"EA 1 Adapter",
		"EA 1 Ball Valve",
		"EA 2 Ball Valve",
		"XX 1 Whatever",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q want %q\nall: %q", i, got[i], want[i], got)
		}
	}
}

func TestAggregateCarriesFields(t *testing.T) {
	master := Aggregate([]internal.RawRecord{rec("doc", 2, "EA", "", "Flange Kit")})
	if len(master) != 1 {
		t.Fatalf("len=%d", len(master))
	}
	m := master[0]
	if m.Units != "EA" || m.Size != "" || m.Description != "Flange Kit" || m.ItemKey != "ea |  | flange kit" {
		t.Fatalf("master: %+v", m)
	}
}
