package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// LessonTypes - словарь типов занятий, заполняется один раз
var LessonTypes = []string{
	"лек", "практ", "лаб",
	"лек+практ", "практ+лаб", "лек+лаб",
	"практ+лек", "лаб+практ", "лаб+лек",
}

func (db *DB) InitDB() error {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.driver == DriverPostgres {
		pk = "SERIAL PRIMARY KEY"
	}

	tables := []string{
		// Группы
		`CREATE TABLE IF NOT EXISTS groups (
			id %[1]s,
			name VARCHAR(20) NOT NULL UNIQUE
		)`,
		// Предметы
		`CREATE TABLE IF NOT EXISTS lessons (
			id %[1]s,
			name VARCHAR(150) NOT NULL
		)`,
		// Преподаватели
		`CREATE TABLE IF NOT EXISTS authors (
			id %[1]s,
			name VARCHAR(100) NOT NULL,
			department VARCHAR(5)
		)`,
		`CREATE TABLE IF NOT EXISTS lesson_types (
			id %[1]s,
			type VARCHAR(20) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS schedule (
			id %[1]s,
			overline BOOLEAN NOT NULL,
			classroom VARCHAR(50),
			corps VARCHAR(10),
			weekday INTEGER NOT NULL,
			num INTEGER NOT NULL,
			group_id INTEGER NOT NULL REFERENCES groups (id),
			lesson_id INTEGER NOT NULL REFERENCES lessons (id),
			author_id INTEGER REFERENCES authors (id),
			lesson_type_id INTEGER REFERENCES lesson_types (id),
			UNIQUE (group_id, weekday, overline, num)
		)`,
		// Пользователи бота
		`CREATE TABLE IF NOT EXISTS active_users (
			id %[1]s,
			tid BIGINT NOT NULL UNIQUE,
			group_id INTEGER REFERENCES groups (id),
			vip BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		// Хэши скачанных файлов расписания
		`CREATE TABLE IF NOT EXISTS files (
			id %[1]s,
			name VARCHAR(255) NOT NULL UNIQUE,
			hash VARCHAR(40) NOT NULL
		)`,
	}

	for _, ddl := range tables {
		if _, err := db.Exec(fmt.Sprintf(ddl, pk)); err != nil {
			return err
		}
	}

	_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_lessons_name ON lessons (name)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_authors_name ON authors (name)`)
	if err != nil {
		return err
	}

	if err := db.seedLessonTypes(); err != nil {
		return err
	}

	log.Println("Database initialized successfully")
	return nil
}

func (db *DB) seedLessonTypes() error {
	r := db.runner()

	var count int
	if err := r.queryRow("SELECT COUNT(*) FROM lesson_types").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, t := range LessonTypes {
		if _, err := r.exec("INSERT INTO lesson_types (type) VALUES (?)", t); err != nil {
			return fmt.Errorf("failed to seed lesson type %s: %w", t, err)
		}
	}
	return nil
}
