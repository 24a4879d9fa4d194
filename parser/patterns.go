package parser

import "regexp"

// В RE2 \w совпадает только с ASCII, поэтому кириллица
// перечисляется через классы \p{L} и \p{N}.
var (
	groupRe = regexp.MustCompile(`^[A-ZА-ЯЁ]\d\d-\d\d\d-\d`)

	authorRe = regexp.MustCompile(
		`(((пр\.)|(доц\.)|(проф\.))\s*)?` +
			`(?P<ath>([А-ЯЁ][А-Яа-яё]+[\s.]+[\s.]?[А-ЯЁ][\s.]+[\s.]?[А-ЯЁ]\.?)|(([А-ЯЁ][а-яё]+\s?){3,}))`)
	titleRe = regexp.MustCompile(`^\s*((пр\.)|(доц\.)|(проф\.))\s*`)

	departmentRe = regexp.MustCompile(`^\s*\(?(?P<dep>\d+[\p{L}\p{N}_]?)\)?`)

	classroomRe = regexp.MustCompile(`(?i)` +
		`((БИ|(\d(к.)?))[\p{L}\p{N}_]?\s?-*(ОД-)?\s?\d+[\p{L}\p{N}_]?\d?((/\d[^\-/]*)|(-[\p{L}\p{N}_]+))?)` +
		`|(ЭОиДОТ)|(ООО\s?[«"][\p{L}\p{N}_-]+[»"])|(ижводоканал)|(ИжНТ)|(ee\.istu\.ru)`)

	lessonTypeRe = regexp.MustCompile(`(?i)[(\s]` +
		`(?P<type>((леке?ц?и?я?\.*)?\s?\+?\s?(практ?и?к?а?\.*)?\s?\+?\s?((л[/.]\s?р?\.*)|(лаб\.*))?` +
		`\s?\+?\s?(практ?и?к?а?\.*)?\s?\+?\s?(леке?ц?и?я?\.*)?))` +
		`(\s\d(,\s?\d)?\sп/гр)?[)\s]`)

	lessonRe = regexp.MustCompile(
		`\s*((\(?[\p{L}\p{N}_\s/+.,\-"]+\)\s*)|(\([\p{L}\p{N}_\s/+.,\-"]+\)?\s*))*` +
			`(?P<name>[\p{L}\p{N}_\s/+.,\-"]{3,})` +
			`(\s*(\([\p{L}\p{N}_\s/+.,\-"]+\)\s*))*(,\s*)?`)
	lessonNoAuthorRe = regexp.MustCompile(
		`\s*(\(?[\p{L}\p{N}_\s/+.,-]+\)\s*)*` +
			`(?P<name>[\p{L}\p{N}_\s.-]{3,})` +
			`(\s*(\([\p{L}\p{N}_\s/+.,-]+\)\s*))*(,\s*)?`)

	wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

	vodokanalRe  = regexp.MustCompile(`(?i)ижводоканал`)
	llcRe        = regexp.MustCompile(`(?i)ООО\s?(?P<name>[«"][\p{L}\p{N}_-]+[»"])`)
	distantRe    = regexp.MustCompile(`(?i)ЭОиДОТ`)
	izhntRe      = regexp.MustCompile(`(?i)ИжНТ`)
	auditoryJunk = regexp.MustCompile(`\s|к.|К.`)

	lectureRe  = regexp.MustCompile(`(?i)леке?ц?и?я?\.*`)
	practiceRe = regexp.MustCompile(`(?i)практ?и?к?а?\.*`)
)

var (
	athIdx          = authorRe.SubexpIndex("ath")
	depIdx          = departmentRe.SubexpIndex("dep")
	typeIdx         = lessonTypeRe.SubexpIndex("type")
	nameIdx         = lessonRe.SubexpIndex("name")
	nameNoAuthorIdx = lessonNoAuthorRe.SubexpIndex("name")
	llcNameIdx      = llcRe.SubexpIndex("name")
)
