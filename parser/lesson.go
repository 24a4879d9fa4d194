package parser

import (
	"fmt"
	"strings"
)

// PEName - название физкультуры, ячейки которой обычно без аудитории и преподавателя
const PEName = "Физическая культура и спорт"

// Lesson - занятие, извлечённое из одной ячейки расписания.
// Пустой указатель означает, что поле не удалось найти.
type Lesson struct {
	Name       *string `json:"name" yaml:"name,omitempty"`
	Author     *string `json:"author" yaml:"author,omitempty"`
	Auditory   *string `json:"auditory" yaml:"auditory,omitempty"`
	LessonType *string `json:"lesson_type" yaml:"lesson_type,omitempty"`
	Department *string `json:"department" yaml:"department,omitempty"`
	Raw        string  `json:"raw" yaml:"raw"`
}

// IsPE проверяет, является ли занятие физкультурой
func (l Lesson) IsPE() bool {
	return l.Name != nil && *l.Name == PEName
}

// IsFull проверяет, что все поля занятия найдены
func (l Lesson) IsFull() bool {
	if l.IsPE() {
		return true
	}
	return l.Name != nil && l.Author != nil && l.Auditory != nil &&
		l.LessonType != nil && l.Department != nil
}

func (l Lesson) String() string {
	return fmt.Sprintf("%-5s|%-16s|%-60s|%-25s|%-10s %s",
		deref(l.Department), deref(l.LessonType), deref(l.Name),
		deref(l.Author), deref(l.Auditory), l.Raw)
}

func deref(s *string) string {
	if s == nil {
		return "None"
	}
	return *s
}

// lessonBuilder собирает поля по мере разбора строки,
// а готовый Lesson отдаёт только в конце
type lessonBuilder struct {
	raw        string
	name       string
	author     string
	auditory   string
	lessonType string
	department string
	found      [5]bool
}

const (
	fieldName = iota
	fieldAuthor
	fieldAuditory
	fieldType
	fieldDepartment
)

func (b *lessonBuilder) set(field int, value string) {
	switch field {
	case fieldName:
		b.name = value
	case fieldAuthor:
		b.author = value
	case fieldAuditory:
		b.auditory = value
	case fieldType:
		b.lessonType = value
	case fieldDepartment:
		b.department = value
	}
	b.found[field] = true
}

func (b *lessonBuilder) build() Lesson {
	l := Lesson{Raw: b.raw}
	if b.found[fieldName] {
		l.Name = strPtr(b.name)
	}
	if b.found[fieldAuthor] {
		l.Author = strPtr(b.author)
	}
	if b.found[fieldAuditory] {
		l.Auditory = strPtr(b.auditory)
	}
	if b.found[fieldType] {
		l.LessonType = strPtr(b.lessonType)
	}
	if b.found[fieldDepartment] {
		l.Department = strPtr(b.department)
	}
	return l
}

func strPtr(s string) *string {
	return &s
}

// flatten заменяет переводы строк пробелами
func flatten(cell string) string {
	return strings.ReplaceAll(cell, "\n", " ")
}
