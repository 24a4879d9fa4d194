package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"schedulebot/parser"
	"schedulebot/utils"

	"github.com/tealeg/xlsx"
)

// ReportEntry - занятие, которое не удалось разобрать полностью
type ReportEntry struct {
	File   string
	Sheet  string
	Group  string
	Slot   parser.Slot
	Lesson parser.Lesson
}

// ReportFileName - имя отчёта по умолчанию
func ReportFileName() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("incomplete_%s.xlsx", time.Now().Format("20060102_150405")))
}

// WriteReport сохраняет неполные занятия в xlsx для ручной проверки
func WriteReport(path string, entries []ReportEntry) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Неполные")
	if err != nil {
		return err
	}

	// Заголовки
	headerRow := sheet.AddRow()
	headers := []string{"Файл", "Лист", "Группа", "День", "Черта", "Пара",
		"Кафедра", "Тип", "Предмет", "Преподаватель", "Аудитория", "Текст ячейки"}
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
	}

	for _, e := range entries {
		row := sheet.AddRow()
		row.AddCell().Value = e.File
		row.AddCell().Value = e.Sheet
		row.AddCell().Value = e.Group
		row.AddCell().Value = utils.WeekdayNames[e.Slot.Weekday%len(utils.WeekdayNames)]
		row.AddCell().Value = utils.LineName(e.Slot.Overline)
		row.AddCell().Value = fmt.Sprint(e.Slot.Num)

		for _, field := range []*string{
			e.Lesson.Department, e.Lesson.LessonType, e.Lesson.Name, e.Lesson.Author, e.Lesson.Auditory,
		} {
			cell := row.AddCell()
			if field != nil {
				cell.Value = *field
			}
		}
		row.AddCell().Value = e.Lesson.Raw
	}

	if err := file.Save(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
