package updater

import "schedulebot/parser"

// CatalogAuthor - преподаватель и кафедра, с которой он встретился впервые
type CatalogAuthor struct {
	Name       string
	Department *string
}

// Catalog - предметы и преподаватели со всех листов, без повторов,
// в порядке первого появления
type Catalog struct {
	Lessons []string
	Authors []CatalogAuthor
}

// Collect - первый проход: собрать справочники до любой записи в базу.
// Имени достаточно, даже если само занятие разобрано не полностью.
func Collect(groups []parser.GroupSchedule) Catalog {
	var c Catalog
	seenLessons := make(map[string]bool)
	seenAuthors := make(map[string]bool)

	for _, gs := range groups {
		for _, l := range gs.Lessons {
			if l == nil {
				continue
			}
			if l.Name != nil && !seenLessons[*l.Name] {
				seenLessons[*l.Name] = true
				c.Lessons = append(c.Lessons, *l.Name)
			}
			if l.Author != nil && !seenAuthors[*l.Author] {
				seenAuthors[*l.Author] = true
				c.Authors = append(c.Authors, CatalogAuthor{Name: *l.Author, Department: l.Department})
			}
		}
	}
	return c
}
