package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrCellExtraction - ячейку не удалось разобрать
var ErrCellExtraction = errors.New("cell extraction failed")

// ParseLesson разбирает текст ячейки на кафедру, тип занятия,
// название, преподавателя и аудиторию.
//
// Поля, которые не нашлись, остаются nil, это не ошибка.
// Порядок шагов важен: номер кафедры затирается звёздочками до поиска
// аудитории, иначе "(51)" распознаётся как аудитория.
func ParseLesson(cell string) (Lesson, error) {
	if !utf8.ValidString(cell) {
		return Lesson{Raw: cell}, fmt.Errorf("%w: invalid utf-8 in %q", ErrCellExtraction, cell)
	}

	line := flatten(cell)
	b := &lessonBuilder{raw: line}

	// Преподаватель ищется по исходной строке
	var (
		author      string
		authorStart int
		titleLen    int
	)
	if m := authorRe.FindStringSubmatchIndex(line); m != nil && m[2*athIdx] >= 0 {
		if title := titleRe.FindString(line[m[0]:m[1]]); title != "" {
			titleLen = len(title)
		}
		author = strings.TrimRightFunc(line[m[2*athIdx]:m[2*athIdx+1]], unicode.IsSpace)
		authorStart = m[2*athIdx]
	}

	if m := departmentRe.FindStringSubmatch(line); m != nil {
		dep := m[depIdx]
		b.set(fieldDepartment, dep)
		line = strings.Replace(line, dep, strings.Repeat("*", len(dep)), 1)
	}

	if room := classroomRe.FindString(line); room != "" {
		b.set(fieldAuditory, FormatAuditory(room))
	}

	if lessonType, ok := findLessonType(line); ok {
		b.set(fieldType, lessonType)
	}

	var name string
	if author != "" {
		short, start := ShortName(author, authorStart)
		b.set(fieldAuthor, short)

		start = runeBoundary(line, start-titleLen)
		if m := lessonRe.FindStringSubmatch(line[:start]); m != nil {
			name = m[nameIdx]
		}
	} else if m := lessonNoAuthorRe.FindStringSubmatch(line); m != nil {
		name = m[nameNoAuthorIdx]
	}

	if name = strings.Trim(name, ", "); name != "" {
		b.set(fieldName, name)
	}

	return b.build(), nil
}

// findLessonType возвращает первый непустой тип занятия.
// Пара скобок или пробелов без текста между ними типом не считается.
func findLessonType(line string) (string, bool) {
	for pos := 0; pos < len(line); {
		m := lessonTypeRe.FindStringSubmatchIndex(line[pos:])
		if m == nil {
			return "", false
		}
		if m[2*typeIdx] >= 0 {
			found := line[pos+m[2*typeIdx] : pos+m[2*typeIdx+1]]
			if strings.IndexFunc(found, unicode.IsLetter) >= 0 {
				return FormatType(found), true
			}
		}
		_, size := utf8.DecodeRuneInString(line[pos+m[0]:])
		pos += m[0] + size
	}
	return "", false
}

func runeBoundary(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
