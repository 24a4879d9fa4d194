package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// longNames - преподаватели, чьи имена не сокращаются до "Фамилия И.О."
var longNames = []string{
	"Аль Аккад Мхд Айман",
}

// ShortName приводит имя преподавателя к виду "Фамилия И.О.".
// start - смещение имени в исходной строке; если слов больше трёх,
// берутся последние три, а смещение сдвигается на отброшенную часть.
func ShortName(name string, start int) (string, int) {
	for _, long := range longNames {
		if strings.EqualFold(name, long) {
			return name, start
		}
	}

	names := wordRe.FindAllString(name, -1)
	if len(names) > 3 {
		last := names[len(names)-3:]
		start += len(strings.Join(names, " ")) - len(strings.Join(last, " "))
		names = last
	}
	if len(names) < 3 {
		return strings.TrimSpace(name), start
	}

	return capitalize(names[0]) + " " + firstRune(names[1]) + "." + firstRune(names[2]) + ".", start
}

// FormatAuditory приводит номер аудитории к каноническому виду
func FormatAuditory(s string) string {
	s = strings.TrimSpace(s)

	switch {
	case vodokanalRe.MatchString(s):
		return "МУП «Ижводоканал»"
	case llcRe.MatchString(s):
		return "ООО " + llcRe.FindStringSubmatch(s)[llcNameIdx]
	case distantRe.MatchString(s):
		return "ЭОиДОТ"
	case izhntRe.MatchString(s):
		return "ИжНТ"
	}

	return auditoryJunk.ReplaceAllString(s, "")
}

// FormatType сводит каждую часть типа занятия к "лек", "практ" или "лаб"
func FormatType(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "+")
	types := make([]string, 0, len(parts))
	for _, part := range parts {
		switch {
		case lectureRe.MatchString(part):
			types = append(types, "лек")
		case practiceRe.MatchString(part):
			types = append(types, "практ")
		default:
			types = append(types, "лаб")
		}
	}
	return strings.Join(types, "+")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func firstRune(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}
