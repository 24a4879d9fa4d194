package parser

import "testing"

func TestFormatAuditory(t *testing.T) {
	tests := map[string]string{
		"3к.240":            "3240",
		" 5-302 ":           "5-302",
		"МУП Ижводоканал":   "МУП «Ижводоканал»",
		"муп ИЖВОДОКАНАЛ":   "МУП «Ижводоканал»",
		`ООО«Аксион»`:       `ООО «Аксион»`,
		"эоидот":            "ЭОиДОТ",
		"ИжНТ":              "ИжНТ",
		"ee.istu.ru":        "ee.istu.ru",
		"7 - 401":           "7-401",
	}
	for in, want := range tests {
		if got := FormatAuditory(in); got != want {
			t.Errorf("FormatAuditory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatType(t *testing.T) {
	tests := map[string]string{
		"лекц":       "лек",
		"практ.":     "практ",
		"л/р":        "лаб",
		"лек+практ":  "лек+практ",
		"лаб+лекция": "лаб+лек",
	}
	for in, want := range tests {
		if got := FormatType(in); got != want {
			t.Errorf("FormatType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatTypeIdempotent(t *testing.T) {
	canonical := []string{"лек", "практ", "лаб", "лек+практ", "практ+лаб", "лек+лаб", "практ+лек", "лаб+практ", "лаб+лек"}
	for _, s := range canonical {
		if got := FormatType(s); got != s {
			t.Errorf("FormatType(%q) = %q", s, got)
		}
	}
}

func TestShortName(t *testing.T) {
	got, start := ShortName("Иванов Иван Иванович", 10)
	if got != "Иванов И.И." || start != 10 {
		t.Errorf("ShortName() = %q, %d", got, start)
	}

	got, _ = ShortName("ИВАНОВ Петр Сергеевич", 0)
	if got != "Иванов П.С." {
		t.Errorf("ShortName() = %q, want surname capitalized", got)
	}

	long := "Аль Аккад Мхд Айман"
	got, start = ShortName(long, 3)
	if got != long || start != 3 {
		t.Errorf("allow-listed name changed: %q, %d", got, start)
	}

	// лишнее слово в начале отбрасывается, смещение сдвигается на него
	got, start = ShortName("Курс Петров Пётр Петрович", 0)
	if got != "Петров П.П." {
		t.Errorf("ShortName() = %q", got)
	}
	if want := len("Курс "); start != want {
		t.Errorf("start = %d, want %d", start, want)
	}
}
