package pipeline

import (
	"strconv"
	"strings"

	"matlist/internal"
	"matlist/internal/util"
)

// descStartTokens name the fitting, valve and pipe categories that reliably
// begin a product description in this document family. The first remainder
// token equal to or starting with one of these marks where the size ends and
// the description begins. Heuristic, not a grammar: a size whose first token
// happens to start with a marker word is misread as description-only.
var descStartTokens = []string{
	"type", "propress", "wrot", "threaded", "butterfly", "bolts",
	"valve", "adapter", "coupling", "cap", "tee", "ell", "reducer",
	"flange", "plug", "tube", "street", "measurement/balancing",
}

// noisePrefixes are known header echoes and vendor footers in the flowed text.
var noisePrefixes = []string{"dkc -", "quantity units"}

// ExtractRowsFromText parses a page's plain text into raw records. Wrapped
// quantity/unit prefixes are stitched to their following line first; each
// logical line must then carry a numeric quantity, an EA or LF unit and at
// least two remainder tokens, split into size and description at the first
// description-start marker.
func ExtractRowsFromText(text, source string) ([]internal.RawRecord, int) {
	records := []internal.RawRecord{}
	if text == "" {
		return records, 0
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := stitchWrappedLines(strings.Split(text, "\n"))

	skipped := 0
	for _, line := range lines {
		low := strings.ToLower(line)
		if hasNoisePrefix(low) {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 4 {
			continue
		}

		qty, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			skipped++
			continue
		}
		units := util.NormalizeText(parts[1])
		if up := strings.ToUpper(units); up != "EA" && up != "LF" {
			continue
		}

		remainder := parts[2:]
		var size, desc string
		if start := descStartIndex(remainder); start <= 0 {
			desc = strings.Join(remainder, " ")
		} else {
			size = strings.Join(remainder[:start], " ")
			desc = strings.Join(remainder[start:], " ")
		}

		size = util.NormalizeText(size)
		desc = util.NormalizeText(desc)
		if desc == "" {
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

// stitchWrappedLines merges a bare quantity/unit line with the line its
// description wrapped onto: exactly two tokens, the first numeric, the second
// EA or LF, and a non-blank following line.
func stitchWrappedLines(lines []string) []string {
	stitched := make([]string, 0, len(lines))
	i := 0
	for i < len(lines) {
		cur := util.NormalizeText(lines[i])
		if cur == "" {
			i++
			continue
		}

		parts := strings.Fields(cur)
		if len(parts) == 2 && i+1 < len(lines) {
			if _, err := strconv.ParseFloat(parts[0], 64); err == nil {
				if unit := strings.ToUpper(parts[1]); unit == "EA" || unit == "LF" {
					if next := util.NormalizeText(lines[i+1]); next != "" {
						stitched = append(stitched, cur+" "+next)
						i += 2
						continue
					}
				}
			}
		}

		stitched = append(stitched, cur)
		i++
	}
	return stitched
}

func descStartIndex(tokens []string) int {
	for i, token := range tokens {
		low := strings.ToLower(token)
		for _, marker := range descStartTokens {
			if strings.HasPrefix(low, marker) {
				return i
			}
		}
	}
	return -1
}

func hasNoisePrefix(line string) bool {
	for _, prefix := range noisePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
