package updater

import (
	"path/filepath"
	"reflect"
	"testing"

	"schedulebot/database"
	"schedulebot/parser"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewDB(database.DriverSQLite, filepath.Join(t.TempDir(), "schedule.db"))
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustParse(t *testing.T, cell string) *parser.Lesson {
	t.Helper()
	l, err := parser.ParseLesson(cell)
	if err != nil {
		t.Fatal(err)
	}
	return &l
}

func ptr(s string) *string { return &s }

func testGroups(t *testing.T) []parser.GroupSchedule {
	first := parser.GroupSchedule{Group: "Б22-191-1"}
	first.Lessons[0] = mustParse(t, "(51) (лекц) Программирование,  Вдовин А.Ю., 122в")
	first.Lessons[1] = mustParse(t, "(66) (л/р) Основы программирования на С++, Кайсина И.А. 5-302")
	first.Lessons[15] = mustParse(t, "(78) (лекц) Управление проектами, Титова О.В., (ee.istu.ru)")

	second := parser.GroupSchedule{Group: "Б22-191-2"}
	second.Lessons[0] = mustParse(t, "(51) (лекц) Программирование,  Вдовин А.Ю., 122в")
	second.Lessons[3] = &parser.Lesson{Name: ptr(parser.PEName)}
	return []parser.GroupSchedule{first, second}
}

func TestCollect(t *testing.T) {
	c := Collect(testGroups(t))
	wantLessons := []string{"Программирование", "Основы программирования на С++", "Управление проектами", parser.PEName}
	if !reflect.DeepEqual(c.Lessons, wantLessons) {
		t.Errorf("lessons = %v, want %v", c.Lessons, wantLessons)
	}
	if len(c.Authors) != 3 {
		t.Fatalf("authors = %+v, want 3", c.Authors)
	}
	if c.Authors[0].Name != "Вдовин А.Ю." || c.Authors[0].Department == nil || *c.Authors[0].Department != "51" {
		t.Errorf("first author = %+v", c.Authors[0])
	}
}

func TestWriteIdempotent(t *testing.T) {
	db := newTestDB(t)
	w := NewWriter(db)
	groups := testGroups(t)

	stats, err := w.Write(Collect(groups), groups)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if stats.Groups != 2 || stats.Rows != 5 {
		t.Errorf("stats = %+v", stats)
	}
	before, err := db.AllSchedule()
	if err != nil {
		t.Fatal(err)
	}

	stats, err = w.Write(Collect(groups), groups)
	if err != nil {
		t.Fatalf("second Write() error = %v", err)
	}
	if stats.Cleared != 5 {
		t.Errorf("cleared = %d, want 5", stats.Cleared)
	}
	after, err := db.AllSchedule()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("schedule changed between runs:\n%+v\n%+v", before, after)
	}

	var lessons int
	if err := db.QueryRow("SELECT COUNT(*) FROM lessons").Scan(&lessons); err != nil {
		t.Fatal(err)
	}
	if lessons != 4 {
		t.Errorf("lessons = %d, want 4", lessons)
	}

	rows, err := db.GetSchedule("Б22-191-1", 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Num != 1 || rows[0].Classroom != "ee.istu.ru" {
		t.Errorf("tuesday rows = %+v", rows)
	}
}

func TestWriteLastWins(t *testing.T) {
	db := newTestDB(t)

	a := parser.GroupSchedule{Group: "Б22-191-1"}
	a.Lessons[0] = &parser.Lesson{Name: ptr("Физика"), Auditory: ptr("1-101")}
	a.Lessons[2] = &parser.Lesson{Name: ptr("Химия")}
	b := parser.GroupSchedule{Group: "Б22-191-1"}
	b.Lessons[0] = &parser.Lesson{Name: ptr("Математика"), Auditory: ptr("2-202")}

	groups := []parser.GroupSchedule{a, b}
	if _, err := NewWriter(db).Write(Collect(groups), groups); err != nil {
		t.Fatal(err)
	}

	rows, err := db.GetSchedule("Б22-191-1", 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %+v, want 2", rows)
	}
	if rows[0].Lesson != "Математика" || rows[0].Classroom != "2-202" {
		t.Errorf("slot 1 = %+v, want overwritten by later sheet", rows[0])
	}
	if rows[1].Lesson != "Химия" {
		t.Errorf("slot 2 = %+v", rows[1])
	}
}

func TestWriteUnknownTypeAndUnnamed(t *testing.T) {
	db := newTestDB(t)

	gs := parser.GroupSchedule{Group: "Б22-191-1"}
	gs.Lessons[0] = &parser.Lesson{Name: ptr("Физика"), LessonType: ptr("семинар")}
	gs.Lessons[1] = &parser.Lesson{Department: ptr("51"), Raw: "(51)"}

	groups := []parser.GroupSchedule{gs}
	stats, err := NewWriter(db).Write(Collect(groups), groups)
	if err != nil {
		t.Fatal(err)
	}
	if stats.UnknownTypes != 1 {
		t.Errorf("unknown types = %d, want 1", stats.UnknownTypes)
	}

	over, _ := db.GetSchedule("Б22-191-1", 0, true)
	if len(over) != 1 || over[0].LessonType != "" {
		t.Errorf("row with unknown type = %+v", over)
	}
	under, _ := db.GetSchedule("Б22-191-1", 0, false)
	if len(under) != 1 || under[0].Lesson != "" {
		t.Errorf("unnamed row = %+v", under)
	}

	var types int
	if err := db.QueryRow("SELECT COUNT(*) FROM lesson_types").Scan(&types); err != nil {
		t.Fatal(err)
	}
	if types != len(database.LessonTypes) {
		t.Errorf("lesson types = %d, vocabulary must not grow", types)
	}
}
