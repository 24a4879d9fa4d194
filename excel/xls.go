package excel

import (
	"errors"
	"fmt"

	"github.com/extrame/xls"
)

func loadXLS(path, charset string) (sheets []Sheet, err error) {
	// extrame/xls паникует на повреждённых файлах
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse xls file: %v", r)
		}
	}()

	wb, err := xls.Open(path, charset)
	if err != nil {
		return nil, fmt.Errorf("failed to open xls file: %w", err)
	}
	if wb == nil {
		return nil, errors.New("failed to open xls file: workbook stream not found")
	}

	layouts, err := readLayouts(path, charset)
	if err != nil {
		return nil, err
	}

	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		var layout sheetLayout
		if i < len(layouts) {
			layout = layouts[i]
		}
		sheets = append(sheets, Sheet{
			Name: ws.Name,
			Grid: Expand(readWorksheet(ws, layout), layout.Merges),
		})
	}

	return sheets, nil
}

func readWorksheet(ws *xls.WorkSheet, layout sheetLayout) *Grid {
	rows := max(int(ws.MaxRow)+1, layout.Rows)
	cols := layout.Cols
	for r := 0; r <= int(ws.MaxRow); r++ {
		if row := sheetRow(ws, r); row != nil {
			cols = max(cols, row.LastCol())
		}
	}
	for _, m := range layout.Merges {
		rows = max(rows, m.Row1)
		cols = max(cols, m.Col1)
	}

	g := NewGrid(cols, rows)
	for r := 0; r <= int(ws.MaxRow); r++ {
		row := sheetRow(ws, r)
		if row == nil {
			continue
		}
		for c := 0; c < cols; c++ {
			g.Set(c, r, row.Col(c))
		}
	}
	return g
}

// sheetRow возвращает nil для строк, которых нет в файле:
// WorkSheet.Row в этом случае паникует
func sheetRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}
