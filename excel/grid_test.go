package excel

import "testing"

func TestExpand(t *testing.T) {
	base := NewGrid(3, 4)
	base.Set(0, 0, "Б22-191-1")
	base.Set(1, 1, "(51) (лекц) Программирование")
	base.Set(2, 1, "лишнее")

	merged := Expand(base, []Rect{
		{Col0: 0, Col1: 2, Row0: 0, Row1: 1},
		{Col0: 1, Col1: 3, Row0: 1, Row1: 3},
	})

	for c := 0; c < 2; c++ {
		if got := merged.At(c, 0); got != "Б22-191-1" {
			t.Errorf("At(%d, 0) = %q", c, got)
		}
	}
	for c := 1; c < 3; c++ {
		for r := 1; r < 3; r++ {
			if got := merged.At(c, r); got != "(51) (лекц) Программирование" {
				t.Errorf("At(%d, %d) = %q", c, r, got)
			}
		}
	}
	if got := merged.At(0, 3); got != "" {
		t.Errorf("cell outside merges changed: %q", got)
	}
	if got := base.At(2, 1); got != "лишнее" {
		t.Errorf("base grid modified: %q", got)
	}
}

func TestExpandClipsOutOfRange(t *testing.T) {
	base := NewGrid(2, 2)
	base.Set(1, 1, "x")
	merged := Expand(base, []Rect{{Col0: 1, Col1: 10, Row0: 1, Row1: 10}})
	if merged.Cols() != 2 || merged.Rows() != 2 {
		t.Fatalf("size = %dx%d", merged.Cols(), merged.Rows())
	}
	if merged.At(5, 5) != "" {
		t.Error("out of range cell must be empty")
	}
}
