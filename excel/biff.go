package excel

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/extrame/ole2"
)

// Записи BIFF8, которые нужны помимо того, что разбирает extrame/xls:
// библиотека пропускает MERGEDCELLS, а без них расписание не восстановить.
const (
	recBOF         = 0x0809
	recEOF         = 0x000A
	recBoundSheet  = 0x0085
	recDimensions  = 0x0200
	recMergedCells = 0x00E5
)

// sheetLayout - размеры листа и его объединённые области
type sheetLayout struct {
	Rows, Cols int
	Merges     []Rect
}

// readLayouts достаёт поток Workbook из OLE2 контейнера и разбирает его
func readLayouts(path, charset string) ([]sheetLayout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ole, err := ole2.Open(f, charset)
	if err != nil {
		return nil, fmt.Errorf("failed to open ole2 container: %w", err)
	}
	dir, err := ole.ListDir()
	if err != nil {
		return nil, fmt.Errorf("failed to list ole2 directory: %w", err)
	}

	var book, root *ole2.File
	for _, file := range dir {
		switch file.Name() {
		case "Workbook", "Book":
			book = file
		case "Root Entry":
			root = file
		}
	}
	if book == nil || root == nil {
		return nil, errors.New("workbook stream not found")
	}

	data, err := io.ReadAll(ole.OpenFile(book, root))
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook stream: %w", err)
	}
	if size := int(book.Size); size > 0 && size < len(data) {
		data = data[:size]
	}

	return parseLayouts(data)
}

func readRecord(data []byte, pos int) (id uint16, body []byte, next int, ok bool) {
	if pos < 0 || pos+4 > len(data) {
		return 0, nil, pos, false
	}
	id = binary.LittleEndian.Uint16(data[pos:])
	size := int(binary.LittleEndian.Uint16(data[pos+2:]))
	start := pos + 4
	if start+size > len(data) {
		return 0, nil, pos, false
	}
	return id, data[start : start+size], start + size, true
}

// parseLayouts читает из потока Workbook положения листов (BOUNDSHEET),
// а затем в каждом листе DIMENSIONS и MERGEDCELLS
func parseLayouts(data []byte) ([]sheetLayout, error) {
	var offsets []int
	for pos := 0; ; {
		id, body, next, ok := readRecord(data, pos)
		if !ok {
			return nil, errors.New("unexpected end of workbook globals")
		}
		if id == recBoundSheet && len(body) >= 4 {
			offsets = append(offsets, int(binary.LittleEndian.Uint32(body)))
		}
		if id == recEOF {
			break
		}
		pos = next
	}

	layouts := make([]sheetLayout, len(offsets))
	for i, offset := range offsets {
		layout, err := parseSheetLayout(data, offset)
		if err != nil {
			return nil, fmt.Errorf("sheet %d: %w", i, err)
		}
		layouts[i] = layout
	}
	return layouts, nil
}

func parseSheetLayout(data []byte, offset int) (sheetLayout, error) {
	var layout sheetLayout
	depth := 0

	for pos := offset; ; {
		id, body, next, ok := readRecord(data, pos)
		if !ok {
			return layout, fmt.Errorf("truncated sheet substream at %d", pos)
		}
		pos = next

		switch id {
		case recBOF:
			depth++
		case recEOF:
			depth--
			if depth <= 0 {
				return layout, nil
			}
		case recDimensions:
			if depth != 1 {
				continue
			}
			switch {
			case len(body) >= 14: // BIFF8
				layout.Rows = int(binary.LittleEndian.Uint32(body[4:]))
				layout.Cols = int(binary.LittleEndian.Uint16(body[10:]))
			case len(body) >= 10: // BIFF5
				layout.Rows = int(binary.LittleEndian.Uint16(body[2:]))
				layout.Cols = int(binary.LittleEndian.Uint16(body[6:]))
			}
		case recMergedCells:
			if depth != 1 || len(body) < 2 {
				continue
			}
			layout.Merges = append(layout.Merges, parseMergedCells(body)...)
		}
	}
}

// parseMergedCells: count, затем count раз (rwFirst, rwLast, colFirst, colLast)
// с включёнными границами
func parseMergedCells(body []byte) []Rect {
	count := int(binary.LittleEndian.Uint16(body))
	rects := make([]Rect, 0, count)
	for i := 0; i < count; i++ {
		p := 2 + i*8
		if p+8 > len(body) {
			break
		}
		rects = append(rects, Rect{
			Row0: int(binary.LittleEndian.Uint16(body[p:])),
			Row1: int(binary.LittleEndian.Uint16(body[p+2:])) + 1,
			Col0: int(binary.LittleEndian.Uint16(body[p+4:])),
			Col1: int(binary.LittleEndian.Uint16(body[p+6:])) + 1,
		})
	}
	return rects
}
