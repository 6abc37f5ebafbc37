package pipeline

import (
	"sort"
	"strings"

	"matlist/internal"
	"matlist/internal/util"
)

// Aggregate reconciles the full raw record stream into one master record per
// distinct (item key, units, size, description) group, summing quantities.
// The result is totally ordered: LF before EA before anything else, then
// description ascending, then numeric size ascending; remaining ties keep
// first-seen input order.
func Aggregate(records []internal.RawRecord) []internal.MasterRecord {
	totals := map[string]*internal.MasterRecord{}
	order := make([]string, 0, len(records))

	for _, r := range records {
		key := groupKey(r)
		m, ok := totals[key]
		if !ok {
			m = &internal.MasterRecord{
				Units:       r.Units,
				Size:        r.Size,
				Description: r.Description,
				ItemKey:     r.ItemKey,
			}
			totals[key] = m
			order = append(order, key)
		}
		m.Quantity += r.Quantity
	}

	master := make([]internal.MasterRecord, 0, len(order))
	for _, key := range order {
		master = append(master, *totals[key])
	}

	sort.SliceStable(master, func(i, j int) bool {
		ri, rj := unitRank(master[i].Units), unitRank(master[j].Units)
		if ri != rj {
			return ri < rj
		}
		if master[i].Description != master[j].Description {
			return master[i].Description < master[j].Description
		}
		return util.SizeToFloat(master[i].Size) < util.SizeToFloat(master[j].Size)
	})
	return master
}

func groupKey(r internal.RawRecord) string {
	return r.ItemKey + "\x00" + r.Units + "\x00" + r.Size + "\x00" + r.Description
}

func unitRank(units string) int {
	switch strings.ToUpper(units) {
	case "LF":
		return 0
	case "EA":
		return 1
	default:
		return 99
	}
}
