package pipeline

import "matlist/internal"

// weakTableThreshold: a page whose table yields fewer records than this is
// treated as having no usable table, and its text is parsed as well. Records
// from both paths are kept; duplicates reconcile during aggregation.
const weakTableThreshold = 2

// ExtractDocument runs the table-first, text-fallback strategy over every
// page of a decoded document.
func ExtractDocument(doc internal.Document) internal.DocumentResult {
	result := internal.DocumentResult{
		Source: doc.Source,
		Path:   doc.Path,
		Pages:  len(doc.Pages),
	}

	for _, page := range doc.Pages {
		tableRecords, tableSkipped := ExtractRowsFromTable(page.Table, doc.Source)
		result.Records = append(result.Records, tableRecords...)
		result.Skipped += tableSkipped

		if len(tableRecords) < weakTableThreshold {
			textRecords, textSkipped := ExtractRowsFromText(page.Text, doc.Source)
			result.Records = append(result.Records, textRecords...)
			result.Skipped += textSkipped
		}
	}
	return result
}
