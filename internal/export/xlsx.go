package export

import (
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName      = "Skip Trace Results"
	maxColumnWidth = 50
)

func writeXLSX(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName(f.GetSheetName(0), SheetName)
	if err != nil {
		return err
	}

	widths := map[int]int{}
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			err = f.SetCellStr(SheetName, cell, value)
			if err != nil {
				return err
			}
			widths[c] = max(widths[c], utf8.RuneCountInString(value))
		}
	}

	for c, width := range widths {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		err = f.SetColWidth(SheetName, name, name, float64(min(width+2, maxColumnWidth)))
		if err != nil {
			return err
		}
	}

	return f.Write(w)
}
