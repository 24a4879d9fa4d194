package utils

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Начало и конец пар
var (
	LessonBegins = [...]string{"08:30", "10:10", "12:20", "14:00", "15:40", "17:20", "19:00"}
	LessonEnds   = [...]string{"10:00", "11:40", "13:50", "15:30", "17:10", "18:50", "20:30"}
)

var WeekdayNames = [...]string{
	"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье",
}

// LessonTime возвращает начало и конец пары по её номеру (с единицы)
func LessonTime(num int) (string, string) {
	if num < 1 || num > len(LessonBegins) {
		return "", ""
	}
	return LessonBegins[num-1], LessonEnds[num-1]
}

// LessonClock переводит "ЧЧ:ММ" в момент того же дня, что и day
func LessonClock(day time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}

// TimeSchedule - расписание звонков одним сообщением
func TimeSchedule() string {
	var sb strings.Builder
	for i := range LessonBegins {
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, LessonBegins[i], LessonEnds[i])
	}
	return sb.String()
}

// Weekday - номер дня недели с понедельника (0) по воскресенье (6)
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsOverline - нечётная неделя по ISO считается неделей над чертой
func IsOverline(t time.Time) bool {
	_, week := t.ISOWeek()
	return week%2 != 0
}

func LineName(overline bool) string {
	if overline {
		return "над"
	}
	return "под"
}

// NumDeclination выбирает форму слова после числительного:
// forms - "пара", "пары", "пар"
func NumDeclination(num int, forms [3]string) string {
	tens := num % 100 / 10
	units := num % 10
	switch {
	case tens == 1 || units == 0 || units >= 5:
		return forms[2]
	case units == 1:
		return forms[0]
	default:
		return forms[1]
	}
}

func ParseDate(dateStr string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(dateStr)) {
	case "сегодня":
		return now, nil
	case "завтра":
		return now.AddDate(0, 0, 1), nil
	case "вчера":
		return now.AddDate(0, 0, -1), nil
	default:
		formats := []string{"02.01.2006", "02.01.06", "2006-01-02", "02/01/2006"}
		for _, format := range formats {
			if t, err := time.ParseInLocation(format, dateStr, now.Location()); err == nil {
				return t, nil
			}
		}
		// без года - текущий год
		if t, err := time.ParseInLocation("02.01", dateStr, now.Location()); err == nil {
			return t.AddDate(now.Year(), 0, 0), nil
		}
		return time.Time{}, fmt.Errorf("неверный формат даты")
	}
}

func DownloadFile(url, filepath string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	out, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func GetFileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// IsScheduleFile проверяет расширение файла по списку допустимых (".xls")
func IsScheduleFile(filename string, extensions []string) bool {
	ext := GetFileExtension(filename)
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// Now - текущее время в часовом поясе института
func Now(timezone string) time.Time {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		// Ижевск - UTC+4
		location = time.FixedZone("SAMT", 4*60*60)
	}
	return time.Now().In(location)
}
