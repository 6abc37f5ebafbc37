package decoder

import (
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"matlist/internal"
)

func decodePDF(path string) ([]internal.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages := make([]internal.Page, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		page := internal.Page{}
		rows, err := p.GetTextByRow()
		if err == nil && len(rows) > 0 {
			page.Table = gridFromRows(rows)
			page.Text = textFromRows(rows)
		} else if text, err := p.GetPlainText(nil); err == nil {
			page.Text = text
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// gridFromRows rebuilds a best-effort cell grid from positioned text: one grid
// row per text row, with a new cell wherever the horizontal gap between glyph
// runs exceeds the cell threshold. A grid with fewer than two rows is not a
// table and is dropped so extraction falls through to the text path.
func gridFromRows(rows pdf.Rows) [][]string {
	grid := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := clusterCells(row.Content)
		if len(cells) > 0 {
			grid = append(grid, cells)
		}
	}
	if len(grid) < 2 {
		return nil
	}
	return grid
}

func textFromRows(rows pdf.Rows) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := clusterCells(row.Content)
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, " "))
		}
	}
	return strings.Join(lines, "\n")
}

func clusterCells(texts pdf.TextHorizontal) []string {
	var cells []string
	var cell strings.Builder

	flush := func() {
		if s := strings.TrimSpace(cell.String()); s != "" {
			cells = append(cells, s)
		}
		cell.Reset()
	}

	started := false
	prevEnd := 0.0
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if started {
			gap := t.X - prevEnd
			if gap > cellGap(t.FontSize) {
				flush()
			} else if gap > wordGap(t.FontSize) {
				cell.WriteByte(' ')
			}
		}
		cell.WriteString(t.S)
		prevEnd = t.X + t.W
		started = true
	}
	flush()
	return cells
}

func cellGap(fontSize float64) float64 {
	if g := fontSize * 1.8; g > 12 {
		return g
	}
	return 12
}

func wordGap(fontSize float64) float64 {
	if g := fontSize * 0.22; g > 1 {
		return g
	}
	return 1
}
