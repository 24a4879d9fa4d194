package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

func loadXLSX(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}

		merges, err := f.GetMergeCells(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read merged cells of %s: %w", name, err)
		}

		rects := make([]Rect, 0, len(merges))
		for _, m := range merges {
			c0, r0, err := excelize.CellNameToCoordinates(m.GetStartAxis())
			if err != nil {
				return nil, err
			}
			c1, r1, err := excelize.CellNameToCoordinates(m.GetEndAxis())
			if err != nil {
				return nil, err
			}
			// excelize считает с единицы и включает правую границу
			rects = append(rects, Rect{Col0: c0 - 1, Col1: c1, Row0: r0 - 1, Row1: r1})
		}

		nrows, ncols := len(rows), 0
		for _, row := range rows {
			ncols = max(ncols, len(row))
		}
		for _, r := range rects {
			nrows = max(nrows, r.Row1)
			ncols = max(ncols, r.Col1)
		}

		g := NewGrid(ncols, nrows)
		for r, row := range rows {
			for c, value := range row {
				g.Set(c, r, value)
			}
		}

		sheets = append(sheets, Sheet{Name: name, Grid: Expand(g, rects)})
	}

	return sheets, nil
}
