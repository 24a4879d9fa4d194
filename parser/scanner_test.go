package parser

import "testing"

// testGrid хранит ячейки по столбцам
type testGrid [][]string

func (g testGrid) Cols() int { return len(g) }

func (g testGrid) Rows() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g testGrid) At(col, row int) string { return g[col][row] }

func newTestGrid(cols, rows int) testGrid {
	g := make(testGrid, cols)
	for i := range g {
		g[i] = make([]string, rows)
	}
	return g
}

func TestSlotFor(t *testing.T) {
	tests := []struct {
		d    int
		want Slot
	}{
		{1, Slot{Weekday: 0, Overline: true, Num: 1}},
		{2, Slot{Weekday: 0, Overline: false, Num: 1}},
		{3, Slot{Weekday: 0, Overline: true, Num: 2}},
		{14, Slot{Weekday: 0, Overline: false, Num: 7}},
		{15, Slot{Weekday: 1, Overline: true, Num: 1}},
		{84, Slot{Weekday: 5, Overline: false, Num: 7}},
	}
	for _, tt := range tests {
		if got := SlotFor(tt.d); got != tt.want {
			t.Errorf("SlotFor(%d) = %+v, want %+v", tt.d, got, tt.want)
		}
	}
}

func TestScanSheet(t *testing.T) {
	g := newTestGrid(2, 100)
	g[0][0] = "Б22-191-1\nИнформатика и вычислительная техника"
	g[0][1] = "(51) (лекц) Программирование,  Вдовин А.Ю., 122в"
	g[0][3] = "(51)"
	g[0][15] = "Физическая культура и спорт"
	g[0][90] = "(66) (л/р) за пределами недели, Кайсина И.А. 5-302"
	g[1][0] = "не заголовок"

	var counter Counter
	var observed int
	groups := ScanSheet(g, &counter, WithObserver(func(group string, slot Slot, l Lesson) {
		observed++
	}))

	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	gs := groups[0]
	if gs.Group != "Б22-191-1" {
		t.Errorf("group = %q", gs.Group)
	}
	if l := gs.Lessons[0]; l == nil || deref(l.Name) != "Программирование" {
		t.Errorf("slot 1 = %v", gs.Lessons[0])
	}
	if gs.Lessons[1] != nil {
		t.Errorf("blank cell must stay nil, got %v", gs.Lessons[1])
	}
	if l := gs.Lessons[2]; l == nil || l.Name != nil {
		t.Errorf("slot 3 should be unnamed lesson, got %v", gs.Lessons[2])
	}
	if l := gs.Lessons[14]; l == nil || !l.IsPE() {
		t.Errorf("slot 15 = %v", gs.Lessons[14])
	}

	want := Counter{Total: 3, Passed: 3, Incomplete: 1, Unnamed: 1}
	if counter != want {
		t.Errorf("counter = %+v, want %+v", counter, want)
	}
	if observed != 3 {
		t.Errorf("observed = %d, want 3", observed)
	}
}

func TestScanSheetShortColumn(t *testing.T) {
	g := newTestGrid(1, 3)
	g[0][1] = "Б22-191-1"
	g[0][2] = "Физическая культура и спорт"

	var counter Counter
	groups := ScanSheet(g, &counter)
	if len(groups) != 1 || groups[0].Lessons[0] == nil {
		t.Fatalf("groups = %+v", groups)
	}
	if counter.Total != 1 {
		t.Errorf("total = %d, want 1", counter.Total)
	}
}

func TestScanSheetKeepsLastOccurrence(t *testing.T) {
	// заголовок объединён на две строки: второе вхождение выровнено верно
	g := newTestGrid(1, 90)
	g[0][0] = "Б22-191-1"
	g[0][1] = "Б22-191-1"
	g[0][2] = "Физическая культура и спорт"

	var counter Counter
	groups := ScanSheet(g, &counter)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if l := groups[0].Lessons[0]; l == nil || !l.IsPE() {
		t.Errorf("slot 1 = %v, want physical education", groups[0].Lessons[0])
	}
	if groups[0].Lessons[1] != nil {
		t.Errorf("slot 2 = %v, want nil", groups[0].Lessons[1])
	}
}

func TestScanSheetCountsErrors(t *testing.T) {
	g := newTestGrid(1, 10)
	g[0][0] = "Б22-191-1"
	g[0][1] = "(51) \xff"
	g[0][2] = "Физическая культура и спорт"

	var counter Counter
	groups := ScanSheet(g, &counter)
	if counter.Errors != 1 || counter.Passed != 1 || counter.Total != 2 {
		t.Errorf("counter = %+v", counter)
	}
	if groups[0].Lessons[0] != nil {
		t.Error("failed cell must leave its slot empty")
	}
	if groups[0].Lessons[1] == nil {
		t.Error("slot after failed cell must keep its position")
	}
}
