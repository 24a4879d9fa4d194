package excel

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file extension")
	ErrNoSheets        = errors.New("no sheets found in excel file")
)

// LoadError - файл расписания не удалось прочитать целиком
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Rect - объединённая область листа, правые границы не включаются
type Rect struct {
	Col0, Col1 int
	Row0, Row1 int
}

// Grid хранит ячейки листа по столбцам: cells[col][row].
// Расписание группы идёт вниз по столбцу, поэтому так удобнее обходить.
type Grid struct {
	cells [][]string
	rows  int
}

func NewGrid(cols, rows int) *Grid {
	g := &Grid{cells: make([][]string, cols), rows: rows}
	for i := range g.cells {
		g.cells[i] = make([]string, rows)
	}
	return g
}

func (g *Grid) Cols() int { return len(g.cells) }

func (g *Grid) Rows() int { return g.rows }

// At возвращает текст ячейки, за пределами листа - пустую строку
func (g *Grid) At(col, row int) string {
	if col < 0 || row < 0 || col >= len(g.cells) || row >= g.rows {
		return ""
	}
	return g.cells[col][row]
}

func (g *Grid) Set(col, row int, value string) {
	if col < 0 || row < 0 || col >= len(g.cells) || row >= g.rows {
		return
	}
	g.cells[col][row] = value
}

// Expand возвращает копию листа, в которой каждая ячейка объединённой
// области содержит текст её левой верхней ячейки. Исходный лист не меняется.
func Expand(base *Grid, merges []Rect) *Grid {
	out := NewGrid(base.Cols(), base.Rows())
	for c := range base.cells {
		copy(out.cells[c], base.cells[c])
	}

	for _, m := range merges {
		value := base.At(m.Col0, m.Row0)
		for c := max(m.Col0, 0); c < min(m.Col1, out.Cols()); c++ {
			for r := max(m.Row0, 0); r < min(m.Row1, out.Rows()); r++ {
				out.cells[c][r] = value
			}
		}
	}
	return out
}

// Sheet - лист после раскрытия объединений
type Sheet struct {
	Name string
	Grid *Grid
}
