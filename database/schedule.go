package database

import (
	"database/sql"
)

// ClearSchedule удаляет все строки расписания перед новой загрузкой
func (tx *Tx) ClearSchedule() (int64, error) {
	result, err := tx.exec("DELETE FROM schedule")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (tx *Tx) getOrCreate(selectQuery, insertQuery string, args ...any) (int64, error) {
	var id int64
	err := tx.queryRow(selectQuery, args...).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case err == sql.ErrNoRows:
		err = tx.queryRow(insertQuery, args...).Scan(&id)
		return id, err
	default:
		return 0, err
	}
}

// GetOrCreateGroup ищет группу по точному имени или создаёт её
func (tx *Tx) GetOrCreateGroup(name string) (int64, error) {
	return tx.getOrCreate(
		"SELECT id FROM groups WHERE name = ?",
		"INSERT INTO groups (name) VALUES (?) RETURNING id",
		name,
	)
}

// GetOrCreateLesson ищет предмет по точному названию или создаёт его
func (tx *Tx) GetOrCreateLesson(name string) (int64, error) {
	return tx.getOrCreate(
		"SELECT id FROM lessons WHERE name = ? ORDER BY id LIMIT 1",
		"INSERT INTO lessons (name) VALUES (?) RETURNING id",
		name,
	)
}

// GetOrCreateAuthor ищет преподавателя по имени; кафедра пишется только при создании
func (tx *Tx) GetOrCreateAuthor(name string, department *string) (int64, error) {
	var id int64
	err := tx.queryRow("SELECT id FROM authors WHERE name = ? ORDER BY id LIMIT 1", name).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case err == sql.ErrNoRows:
		err = tx.queryRow(
			"INSERT INTO authors (name, department) VALUES (?, ?) RETURNING id",
			name, nullString(department),
		).Scan(&id)
		return id, err
	default:
		return 0, err
	}
}

// LessonTypeID возвращает id типа занятия; словарь не пополняется
func (tx *Tx) LessonTypeID(lessonType string) (int64, error) {
	var id int64
	err := tx.queryRow("SELECT id FROM lesson_types WHERE type = ?", lessonType).Scan(&id)
	return id, notFound(err)
}

// UpsertSchedule добавляет пару или перезаписывает её на том же месте
// (группа, день, черта, номер)
func (tx *Tx) UpsertSchedule(e ScheduleEntry) (int64, error) {
	var id int64
	err := tx.queryRow(
		"SELECT id FROM schedule WHERE group_id = ? AND weekday = ? AND overline = ? AND num = ?",
		e.GroupID, e.Weekday, e.Overline, e.Num,
	).Scan(&id)

	switch {
	case err == nil:
		_, err = tx.exec(`
			UPDATE schedule
			SET lesson_id = ?, author_id = ?, lesson_type_id = ?, classroom = ?, corps = ?
			WHERE id = ?`,
			e.LessonID, nullInt(e.AuthorID), nullInt(e.LessonTypeID),
			nullString(e.Classroom), nullString(e.Corps), id,
		)
		return id, err
	case err == sql.ErrNoRows:
		err = tx.queryRow(`
			INSERT INTO schedule (group_id, weekday, overline, num, lesson_id, author_id, lesson_type_id, classroom, corps)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			e.GroupID, e.Weekday, e.Overline, e.Num, e.LessonID,
			nullInt(e.AuthorID), nullInt(e.LessonTypeID),
			nullString(e.Classroom), nullString(e.Corps),
		).Scan(&id)
		return id, err
	default:
		return 0, err
	}
}

const scheduleSelect = `
	SELECT g.name, s.weekday, s.overline, s.num, l.name, a.name, t.type, s.classroom
	FROM schedule s
	JOIN groups g ON g.id = s.group_id
	JOIN lessons l ON l.id = s.lesson_id
	LEFT JOIN authors a ON a.id = s.author_id
	LEFT JOIN lesson_types t ON t.id = s.lesson_type_id
`

// GetSchedule возвращает пары группы на день недели и неделю
func (db *DB) GetSchedule(group string, weekday int, overline bool) ([]ScheduleRow, error) {
	return db.scanSchedule(scheduleSelect+`
		WHERE g.name = ? AND s.weekday = ? AND s.overline = ?
		ORDER BY s.num`,
		group, weekday, overline,
	)
}

// GetAuthorSchedule - пары преподавателя на день
func (db *DB) GetAuthorSchedule(author string, weekday int, overline bool) ([]ScheduleRow, error) {
	return db.scanSchedule(scheduleSelect+`
		WHERE a.name = ? AND s.weekday = ? AND s.overline = ?
		ORDER BY s.num, g.name`,
		author, weekday, overline,
	)
}

// AllSchedule - всё расписание, упорядоченное по месту пары
func (db *DB) AllSchedule() ([]ScheduleRow, error) {
	return db.scanSchedule(scheduleSelect + `
		ORDER BY g.name, s.weekday, s.overline, s.num`)
}

func (db *DB) scanSchedule(query string, args ...any) ([]ScheduleRow, error) {
	rows, err := db.runner().query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ScheduleRow
	for rows.Next() {
		var (
			row                         ScheduleRow
			author, lessonType, classrm sql.NullString
		)
		if err := rows.Scan(&row.Group, &row.Weekday, &row.Overline, &row.Num,
			&row.Lesson, &author, &lessonType, &classrm); err != nil {
			return nil, err
		}
		row.Author = author.String
		row.LessonType = lessonType.String
		row.Classroom = classrm.String
		result = append(result, row)
	}
	return result, rows.Err()
}

// GroupExists проверяет, есть ли группа с таким именем
func (db *DB) GroupExists(name string) (bool, error) {
	var id int64
	err := db.runner().queryRow("SELECT id FROM groups WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// AuthorExists проверяет, есть ли преподаватель с таким именем
func (db *DB) AuthorExists(name string) (bool, error) {
	var id int64
	err := db.runner().queryRow("SELECT id FROM authors WHERE name = ? LIMIT 1", name).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (db *DB) GetGroups() ([]Group, error) {
	rows, err := db.Query("SELECT id, name FROM groups ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
