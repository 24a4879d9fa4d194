package utils

import (
	"testing"
	"time"
)

func TestNumDeclination(t *testing.T) {
	forms := [3]string{"пара", "пары", "пар"}
	tests := map[int]string{
		0: "пар", 1: "пара", 2: "пары", 4: "пары", 5: "пар",
		11: "пар", 12: "пар", 21: "пара", 22: "пары", 111: "пар",
	}
	for n, want := range tests {
		if got := NumDeclination(n, forms); got != want {
			t.Errorf("NumDeclination(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestIsOverline(t *testing.T) {
	// 5 января 2026 - понедельник второй недели по ISO
	monday := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)
	if IsOverline(monday) {
		t.Error("even ISO week should be under the line")
	}
	if !IsOverline(monday.AddDate(0, 0, 7)) {
		t.Error("odd ISO week should be over the line")
	}
}

func TestWeekday(t *testing.T) {
	sunday := time.Date(2022, time.September, 11, 0, 0, 0, 0, time.UTC)
	if got := Weekday(sunday); got != 6 {
		t.Errorf("Weekday(sunday) = %d, want 6", got)
	}
	if got := Weekday(sunday.AddDate(0, 0, 1)); got != 0 {
		t.Errorf("Weekday(monday) = %d, want 0", got)
	}
}

func TestLessonTime(t *testing.T) {
	begin, end := LessonTime(1)
	if begin != "08:30" || end != "10:00" {
		t.Errorf("LessonTime(1) = %s-%s", begin, end)
	}
	if begin, _ := LessonTime(8); begin != "" {
		t.Errorf("LessonTime(8) = %s, want empty", begin)
	}
}

func TestIsScheduleFile(t *testing.T) {
	exts := []string{".xls"}
	if !IsScheduleFile("ИВТ 1 курс.XLS", exts) {
		t.Error("upper-case extension must match")
	}
	if IsScheduleFile("notes.txt", exts) {
		t.Error("txt accepted")
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)
	got, err := ParseDate("20.10", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Year() != 2026 || got.Month() != time.October || got.Day() != 20 {
		t.Errorf("ParseDate() = %v", got)
	}
	if got, _ := ParseDate("завтра", now); got.Day() != 19 {
		t.Errorf("ParseDate(завтра) = %v", got)
	}
	if _, err := ParseDate("когда-нибудь", now); err == nil {
		t.Error("expected error")
	}
}
