package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"matlist/internal"
)

// Column contracts for the two output sheets. Order is externally observable
// and must not change.
var (
	masterHeaders = []string{"quantity", "units", "size", "description", "item_key"}
	rawHeaders    = []string{"source", "quantity", "units", "size", "description", "item_key"}
)

// ExportWorkbook writes the consolidated list to the "Master" sheet and every
// extracted record, in extraction order, to the "RawExtract" sheet.
func ExportWorkbook(master []internal.MasterRecord, raw []internal.RawRecord, outputPath string) error {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), "Master"); err != nil {
		return err
	}
	writeHeaders(f, "Master", masterHeaders)
	for i, m := range master {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue("Master", cell, value)
		}
		set(1, m.Quantity)
		set(2, m.Units)
		set(3, m.Size)
		set(4, m.Description)
		set(5, m.ItemKey)
	}

	if _, err := f.NewSheet("RawExtract"); err != nil {
		return err
	}
	writeHeaders(f, "RawExtract", rawHeaders)
	for i, rec := range raw {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue("RawExtract", cell, value)
		}
		set(1, rec.Source)
		set(2, rec.Quantity)
		set(3, rec.Units)
		set(4, rec.Size)
		set(5, rec.Description)
		set(6, rec.ItemKey)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}
