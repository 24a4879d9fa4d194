package updater

import (
	"errors"
	"fmt"

	"schedulebot/database"
	"schedulebot/parser"

	log "github.com/sirupsen/logrus"
)

// WriteStats - итог записи в базу
type WriteStats struct {
	Cleared      int64
	Groups       int
	Rows         int
	UnknownTypes int
}

// Writer переносит разобранное расписание в базу
type Writer struct {
	db *database.DB
}

func NewWriter(db *database.DB) *Writer {
	return &Writer{db: db}
}

// Write очищает расписание и заполняет его заново в одной транзакции.
// Одна и та же пара группы, встреченная повторно, перезаписывается.
func (w *Writer) Write(catalog Catalog, groups []parser.GroupSchedule) (WriteStats, error) {
	var stats WriteStats

	err := w.db.InTx(func(tx *database.Tx) error {
		cleared, err := tx.ClearSchedule()
		if err != nil {
			return fmt.Errorf("failed to clear schedule: %w", err)
		}
		stats.Cleared = cleared

		lessonIDs := make(map[string]int64, len(catalog.Lessons))
		for _, name := range catalog.Lessons {
			id, err := tx.GetOrCreateLesson(name)
			if err != nil {
				return fmt.Errorf("failed to add lesson %q: %w", name, err)
			}
			lessonIDs[name] = id
		}

		authorIDs := make(map[string]int64, len(catalog.Authors))
		for _, a := range catalog.Authors {
			id, err := tx.GetOrCreateAuthor(a.Name, a.Department)
			if err != nil {
				return fmt.Errorf("failed to add author %q: %w", a.Name, err)
			}
			authorIDs[a.Name] = id
		}

		r := &rowWriter{
			tx:        tx,
			lessonIDs: lessonIDs,
			authorIDs: authorIDs,
			typeIDs:   make(map[string]*int64),
			stats:     &stats,
		}
		for _, gs := range groups {
			if err := r.writeGroup(gs); err != nil {
				return fmt.Errorf("group %s: %w", gs.Group, err)
			}
		}
		return nil
	})
	if err != nil {
		return WriteStats{}, err
	}

	log.Infof("Schedule written: %d groups, %d rows (%d old rows removed)",
		stats.Groups, stats.Rows, stats.Cleared)
	return stats, nil
}

type rowWriter struct {
	tx        *database.Tx
	lessonIDs map[string]int64
	authorIDs map[string]int64
	typeIDs   map[string]*int64
	stats     *WriteStats
}

func (r *rowWriter) writeGroup(gs parser.GroupSchedule) error {
	groupID, err := r.tx.GetOrCreateGroup(gs.Group)
	if err != nil {
		return err
	}
	r.stats.Groups++

	for i, lesson := range gs.Lessons {
		if lesson == nil {
			continue
		}
		slot := parser.SlotFor(i + 1)

		// без названия пара всё равно занимает место в сетке
		name := ""
		if lesson.Name != nil {
			name = *lesson.Name
		}
		lessonID, ok := r.lessonIDs[name]
		if !ok {
			if lessonID, err = r.tx.GetOrCreateLesson(name); err != nil {
				return err
			}
			r.lessonIDs[name] = lessonID
		}

		var authorID *int64
		if lesson.Author != nil {
			id, ok := r.authorIDs[*lesson.Author]
			if !ok {
				if id, err = r.tx.GetOrCreateAuthor(*lesson.Author, lesson.Department); err != nil {
					return err
				}
				r.authorIDs[*lesson.Author] = id
			}
			authorID = &id
		}

		var typeID *int64
		if lesson.LessonType != nil {
			if typeID, err = r.lessonType(*lesson.LessonType); err != nil {
				return err
			}
			if typeID == nil {
				r.stats.UnknownTypes++
				log.WithFields(log.Fields{
					"group": gs.Group, "weekday": slot.Weekday, "num": slot.Num,
				}).Warnf("No lesson type in db: %s", *lesson.LessonType)
			}
		}

		_, err = r.tx.UpsertSchedule(database.ScheduleEntry{
			GroupID:      groupID,
			LessonID:     lessonID,
			AuthorID:     authorID,
			LessonTypeID: typeID,
			Weekday:      slot.Weekday,
			Overline:     slot.Overline,
			Num:          slot.Num,
			Classroom:    lesson.Auditory,
		})
		if err != nil {
			return err
		}
		r.stats.Rows++
	}
	return nil
}

// lessonType возвращает nil для типа, которого нет в словаре
func (r *rowWriter) lessonType(t string) (*int64, error) {
	if id, ok := r.typeIDs[t]; ok {
		return id, nil
	}
	id, err := r.tx.LessonTypeID(t)
	switch {
	case err == nil:
		r.typeIDs[t] = &id
		return &id, nil
	case errors.Is(err, database.ErrNotFound):
		r.typeIDs[t] = nil
		return nil, nil
	default:
		return nil, err
	}
}
