package handlers

import (
	"fmt"
	"strings"
	"time"

	"schedulebot/database"
	"schedulebot/utils"
)

// MaxMessageLength - ограничение Telegram на длину одного сообщения
const MaxMessageLength = 4096

var (
	minuteForms = [3]string{"минута", "минуты", "минут"}
	hourForms   = [3]string{"час", "часа", "часов"}
	lessonForms = [3]string{"пара", "пары", "пар"}
)

// DayTitle: "Понедельник, 02.09 (над чертой)"
func DayTitle(day time.Time) string {
	return fmt.Sprintf("%s, %s (%s чертой)",
		utils.WeekdayNames[utils.Weekday(day)], day.Format("02.01"), utils.LineName(utils.IsOverline(day)))
}

// FormatRow - одна пара:
//
//	1. 08:30 - 10:00
//	Программирование Вдовин А.Ю. (лек) 122в
//
// В расписании преподавателя вместо его имени выводится группа.
func FormatRow(r database.ScheduleRow, forTeacher bool) string {
	begin, end := utils.LessonTime(r.Num)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d. %s - %s\n", r.Num, begin, end)
	if forTeacher {
		sb.WriteString(r.Group + ": ")
	}

	name := r.Lesson
	if name == "" {
		name = "Без названия"
	}
	sb.WriteString(name)

	if r.Author != "" && !forTeacher {
		sb.WriteString(" " + r.Author)
	}
	if r.LessonType != "" {
		fmt.Fprintf(&sb, " (%s)", r.LessonType)
	}
	if r.Classroom != "" {
		sb.WriteString(" " + r.Classroom)
	}
	return sb.String()
}

func FormatDay(title string, rows []database.ScheduleRow, forTeacher bool) string {
	if len(rows) == 0 {
		return title + "\n\nПар нет 🎉"
	}

	parts := []string{fmt.Sprintf("%s\n%d %s", title, len(rows), utils.NumDeclination(len(rows), lessonForms))}
	for _, r := range rows {
		parts = append(parts, FormatRow(r, forTeacher))
	}
	return strings.Join(parts, "\n\n")
}

// FormatWeek - неделя одной строкой на пару, дни без пар пропускаются
func FormatWeek(days [6][]database.ScheduleRow, overline bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 Неделя %s чертой\n", utils.LineName(overline))

	empty := true
	for weekday, rows := range days {
		if len(rows) == 0 {
			continue
		}
		empty = false
		fmt.Fprintf(&sb, "\n%s\n", utils.WeekdayNames[weekday])
		for _, r := range rows {
			begin, _ := utils.LessonTime(r.Num)
			name := r.Lesson
			if name == "" {
				name = "Без названия"
			}
			fmt.Fprintf(&sb, "%d. %s %s", r.Num, begin, name)
			if r.LessonType != "" {
				fmt.Fprintf(&sb, " (%s)", r.LessonType)
			}
			if r.Classroom != "" {
				sb.WriteString(" " + r.Classroom)
			}
			sb.WriteString("\n")
		}
	}
	if empty {
		sb.WriteString("\nПар нет")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatDuration: 1 час 5 минут; меньше часа - только минуты.
// Неполная минута округляется вверх.
func FormatDuration(d time.Duration) string {
	minutes := int((d + time.Minute - 1) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60

	switch {
	case h == 0:
		return fmt.Sprintf("%d %s", m, utils.NumDeclination(m, minuteForms))
	case m == 0:
		return fmt.Sprintf("%d %s", h, utils.NumDeclination(h, hourForms))
	default:
		return fmt.Sprintf("%d %s %d %s",
			h, utils.NumDeclination(h, hourForms), m, utils.NumDeclination(m, minuteForms))
	}
}

// FormatNow - текущая и следующая пара относительно now.
// rows - пары на день now, упорядоченные по номеру.
func FormatNow(rows []database.ScheduleRow, now time.Time) string {
	var parts []string
	for _, r := range rows {
		begin, end := utils.LessonTime(r.Num)
		if begin == "" {
			continue
		}
		start, finish := utils.LessonClock(now, begin), utils.LessonClock(now, end)

		switch {
		case !now.Before(start) && now.Before(finish):
			parts = append(parts, fmt.Sprintf("Сейчас:\n%s\n\nДо конца пары %s",
				FormatRow(r, false), FormatDuration(finish.Sub(now))))
		case now.Before(start):
			parts = append(parts, fmt.Sprintf("Следующая:\n%s\n\nДо начала %s",
				FormatRow(r, false), FormatDuration(start.Sub(now))))
		}
		if len(parts) > 0 && now.Before(start) {
			break
		}
	}

	if len(parts) == 0 {
		return "Пары на сегодня закончились"
	}
	return strings.Join(parts, "\n\n")
}

// SplitMessage режет длинный текст по пустым строкам, чтобы каждая
// часть помещалась в одно сообщение
func SplitMessage(text string, limit int) []string {
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	var (
		out     []string
		current string
	)
	for _, block := range strings.Split(text, "\n\n") {
		candidate := block
		if current != "" {
			candidate = current + "\n\n" + block
		}
		if len([]rune(candidate)) <= limit {
			current = candidate
			continue
		}
		if current != "" {
			out = append(out, current)
		}
		// блок сам по себе длиннее лимита
		for r := []rune(block); ; r = r[limit:] {
			if len(r) <= limit {
				current = string(r)
				break
			}
			out = append(out, string(r[:limit]))
		}
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}
