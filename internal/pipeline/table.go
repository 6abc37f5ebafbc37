package pipeline

import (
	"strconv"
	"strings"

	"matlist/internal"
	"matlist/internal/util"
)

// headerHints mark a grid as a takeoff table: at least one header cell must
// contain one of these for the table to be accepted.
var headerHints = []string{"quantity", "units", "size", "description"}

// ExtractRowsFromTable parses a page's table grid into raw records. Row 0 is
// the header; the four field columns are resolved by substring match against
// the normalized header cells, leftmost match winning. Tables missing the
// header hints or any of the four columns yield no records. Data rows with a
// missing required field or an unparsable quantity are dropped and counted.
func ExtractRowsFromTable(table [][]string, source string) ([]internal.RawRecord, int) {
	records := []internal.RawRecord{}
	if len(table) < 2 {
		return records, 0
	}

	header := make([]string, 0, len(table[0]))
	for _, cell := range table[0] {
		header = append(header, strings.ToLower(util.NormalizeText(cell)))
	}
	if !hasHeaderHint(header) {
		return records, 0
	}

	idxQty := findColumn(header, "quantity")
	idxUnits := findColumn(header, "units")
	idxSize := findColumn(header, "size")
	idxDesc := findColumn(header, "description")
	if idxQty < 0 || idxUnits < 0 || idxSize < 0 || idxDesc < 0 {
		return records, 0
	}

	minLen := maxIndex(idxQty, idxUnits, idxSize, idxDesc) + 1
	skipped := 0
	for _, row := range table[1:] {
		if len(row) < minLen {
			continue
		}

		qtyRaw := util.NormalizeText(row[idxQty])
		units := util.NormalizeText(row[idxUnits])
		size := util.NormalizeText(row[idxSize])
		desc := util.NormalizeText(row[idxDesc])

		if qtyRaw == "" || units == "" || desc == "" {
			skipped++
			continue
		}
		qty, err := strconv.ParseFloat(qtyRaw, 64)
		if err != nil {
			skipped++
			continue
		}

		records = append(records, internal.RawRecord{
			Source:      source,
			Quantity:    qty,
			Units:       units,
			Size:        size,
			Description: desc,
			ItemKey:     util.MakeItemKey(size, desc, units),
		})
	}
	return records, skipped
}

func hasHeaderHint(header []string) bool {
	for _, cell := range header {
		for _, hint := range headerHints {
			if strings.Contains(cell, hint) {
				return true
			}
		}
	}
	return false
}

func findColumn(header []string, name string) int {
	for i, cell := range header {
		if strings.Contains(cell, name) {
			return i
		}
	}
	return -1
}

func maxIndex(indexes ...int) int {
	max := indexes[0]
	for _, idx := range indexes[1:] {
		if idx > max {
			max = idx
		}
	}
	return max
}
