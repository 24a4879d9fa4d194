package updater

import (
	"fmt"
	"os"

	"schedulebot/parser"

	"gopkg.in/yaml.v3"
)

type dumpLesson struct {
	parser.Slot   `yaml:",inline"`
	parser.Lesson `yaml:",inline"`
}

type dumpGroup struct {
	Group   string       `yaml:"group"`
	Lessons []dumpLesson `yaml:"lessons"`
}

// DumpYAML сохраняет разобранное расписание в YAML для ручной проверки
func DumpYAML(path string, groups []parser.GroupSchedule) error {
	out := make([]dumpGroup, 0, len(groups))
	for _, gs := range groups {
		dg := dumpGroup{Group: gs.Group}
		for i, l := range gs.Lessons {
			if l == nil {
				continue
			}
			dg.Lessons = append(dg.Lessons, dumpLesson{Slot: parser.SlotFor(i + 1), Lesson: *l})
		}
		out = append(out, dg)
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать расписание: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("не удалось записать файл: %w", err)
	}
	return nil
}

// LoadYAML читает расписание, сохранённое DumpYAML
func LoadYAML(path string) ([]parser.GroupSchedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл: %w", err)
	}

	var in []dumpGroup
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("не удалось распарсить YAML: %w", err)
	}

	groups := make([]parser.GroupSchedule, 0, len(in))
	for _, dg := range in {
		gs := parser.GroupSchedule{Group: dg.Group}
		for _, dl := range dg.Lessons {
			if dl.Num < 1 || dl.Num > parser.LessonsPerDay || dl.Weekday < 0 || dl.Weekday >= parser.SlotsPerGroup/parser.SlotsPerDay {
				return nil, fmt.Errorf("группа %s: неверное место пары %+v", dg.Group, dl.Slot)
			}
			d := dl.Weekday*parser.SlotsPerDay + (dl.Num-1)*2 + 1
			if !dl.Overline {
				d++
			}
			l := dl.Lesson
			gs.Lessons[d-1] = &l
		}
		groups = append(groups, gs)
	}
	return groups, nil
}
