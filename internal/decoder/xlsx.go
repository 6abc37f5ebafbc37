package decoder

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"matlist/internal"
)

// decodeXLSX treats every sheet as one page. The sheet rows double as the
// table grid, with a joined-cell text rendering for the fallback parser.
func decodeXLSX(path string) ([]internal.Page, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages := []internal.Page{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, strings.Join(row, " "))
		}
		pages = append(pages, internal.Page{Table: rows, Text: strings.Join(lines, "\n")})
	}
	return pages, nil
}
