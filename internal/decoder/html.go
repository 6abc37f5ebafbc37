package decoder

import (
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"matlist/internal"
)

// decodeHTML maps an HTML export to a single page: the first <table> becomes
// the grid, block elements become the text lines.
func decodeHTML(path string) ([]internal.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, err
	}

	page := internal.Page{Text: textLines(doc)}
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		page.Table = gridFromHTMLTable(table)
		return false
	})
	return []internal.Page{page}, nil
}

func gridFromHTMLTable(table *goquery.Selection) [][]string {
	grid := [][]string{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			grid = append(grid, cells)
		}
	})
	return grid
}

func textLines(doc *goquery.Document) string {
	lines := []string{}
	doc.Find("p, li, tr").Each(func(_ int, sel *goquery.Selection) {
		if line := strings.Join(strings.Fields(sel.Text()), " "); line != "" {
			lines = append(lines, line)
		}
	})
	return strings.Join(lines, "\n")
}
