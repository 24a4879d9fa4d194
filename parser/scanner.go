package parser

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	// LessonsPerDay - пар в день
	LessonsPerDay = 7
	// SlotsPerDay - строк на день: каждая пара над и под чертой
	SlotsPerDay = LessonsPerDay * 2
	// SlotsPerGroup - строк под заголовком группы, шесть учебных дней
	SlotsPerGroup = SlotsPerDay * 6
)

// Grid - лист таблицы после раскрытия объединённых ячеек
type Grid interface {
	Cols() int
	Rows() int
	At(col, row int) string
}

// Slot - положение пары в неделе
type Slot struct {
	Weekday  int  `json:"weekday" yaml:"weekday"`
	Overline bool `json:"overline" yaml:"overline"`
	Num      int  `json:"num" yaml:"num"`
}

// SlotFor переводит смещение d (1..84) от заголовка группы в день недели,
// чётность и номер пары
func SlotFor(d int) Slot {
	i := d - 1
	return Slot{
		Weekday:  i / SlotsPerDay,
		Overline: i%2 == 0,
		Num:      (i%SlotsPerDay)/2 + 1,
	}
}

// GroupSchedule - все пары одной группы с одного листа.
// Lessons[d-1] соответствует смещению d, nil означает отсутствие пары.
type GroupSchedule struct {
	Group   string                 `json:"group" yaml:"group"`
	Lessons [SlotsPerGroup]*Lesson `json:"lessons" yaml:"-"`
}

// Counter - счётчики прогона разбора
type Counter struct {
	Total      int `json:"total"`
	Passed     int `json:"passed"`
	Incomplete int `json:"incomplete"`
	Unnamed    int `json:"unnamed"`
	Errors     int `json:"errors"`
}

func (c *Counter) String() string {
	return fmt.Sprintf("total: %d, passed: %d, incomplete: %d, unnamed: %d, errors: %d",
		c.Total, c.Passed, c.Incomplete, c.Unnamed, c.Errors)
}

// Observer получает каждое разобранное занятие
type Observer func(group string, slot Slot, lesson Lesson)

type scanOptions struct {
	observers []Observer
}

type ScanOption func(*scanOptions)

// WithObserver подписывает на разобранные занятия (вывод в консоль, отчёт)
func WithObserver(o Observer) ScanOption {
	return func(opts *scanOptions) {
		opts.observers = append(opts.observers, o)
	}
}

// IsGroupHeader проверяет, начинается ли ячейка с шифра группы
func IsGroupHeader(cell string) bool {
	return groupRe.MatchString(cell)
}

// ScanSheet находит на листе заголовки групп и разбирает 84 ячейки под каждым.
// Если группа встречается на листе несколько раз (заголовок объединён
// на несколько строк), остаётся последнее вхождение целиком, а не одна
// запись на каждый заголовок со слиянием по ячейкам при записи в базу.
func ScanSheet(grid Grid, counter *Counter, opts ...ScanOption) []GroupSchedule {
	var o scanOptions
	for _, opt := range opts {
		opt(&o)
	}

	var result []GroupSchedule
	index := make(map[string]int)

	for x := 0; x < grid.Cols(); x++ {
		for y := 0; y < grid.Rows(); y++ {
			header := grid.At(x, y)
			if !IsGroupHeader(header) {
				continue
			}

			group := strings.TrimSpace(strings.Split(header, "\n")[0])
			log.Debugf("GROUP: %s", group)

			gs := GroupSchedule{Group: group}
			for d := 1; d <= SlotsPerGroup; d++ {
				cell := cellAt(grid, x, y+d)
				if strings.TrimSpace(cell) == "" {
					continue
				}
				counter.Total++

				lesson, err := parseCell(cell)
				if err != nil {
					log.WithError(err).WithField("group", group).Error(flatten(cell))
					counter.Errors++
					continue
				}

				counter.Passed++
				if !lesson.IsFull() {
					counter.Incomplete++
				}
				if lesson.Name == nil {
					counter.Unnamed++
				}

				l := lesson
				gs.Lessons[d-1] = &l
				for _, observe := range o.observers {
					observe(group, SlotFor(d), lesson)
				}
			}

			if i, ok := index[group]; ok {
				result[i] = gs
				continue
			}
			index[group] = len(result)
			result = append(result, gs)
		}
	}

	return result
}

func cellAt(grid Grid, col, row int) string {
	if row >= grid.Rows() {
		return ""
	}
	return grid.At(col, row)
}

// parseCell перехватывает панику разбора, чтобы одна ячейка не роняла весь лист
func parseCell(cell string) (lesson Lesson, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCellExtraction, r)
		}
	}()
	return ParseLesson(cell)
}
