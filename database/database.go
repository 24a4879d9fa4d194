package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound - запись не найдена
var ErrNotFound = errors.New("not found")

// Поддерживаемые драйверы
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

type DB struct {
	*sql.DB
	driver string
}

// NewDB открывает базу (sqlite3 или pgx), проверяет соединение и создаёт таблицы
func NewDB(driver, dsn string) (*DB, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	if driver == DriverSQLite {
		// одна запись за раз, иначе "database is locked" внутри транзакции
		conn.SetMaxOpenConns(1)
	}

	db := &DB{DB: conn, driver: driver}
	if err := db.InitDB(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) Driver() string {
	return db.driver
}

// querier - общее у *sql.DB и *sql.Tx
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// runner подставляет плейсхолдеры нужного драйвера
type runner struct {
	q      querier
	driver string
}

func (r runner) exec(query string, args ...any) (sql.Result, error) {
	return r.q.Exec(rebind(r.driver, query), args...)
}

func (r runner) query(query string, args ...any) (*sql.Rows, error) {
	return r.q.Query(rebind(r.driver, query), args...)
}

func (r runner) queryRow(query string, args ...any) *sql.Row {
	return r.q.QueryRow(rebind(r.driver, query), args...)
}

func (db *DB) runner() runner {
	return runner{q: db.DB, driver: db.driver}
}

// rebind заменяет "?" на "$1", "$2"... для Postgres
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Tx - транзакция с методами записи расписания
type Tx struct {
	runner
	tx *sql.Tx
}

// InTx выполняет fn в одной транзакции: ошибка fn откатывает всё
func (db *DB) InTx(fn func(tx *Tx) error) error {
	sqlTx, err := db.Begin()
	if err != nil {
		return err
	}

	// паника в fn не должна оставить единственное соединение sqlite в транзакции
	defer func() {
		if p := recover(); p != nil {
			sqlTx.Rollback()
			panic(p)
		}
	}()

	tx := &Tx{runner: runner{q: sqlTx, driver: db.driver}, tx: sqlTx}
	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			log.WithError(rbErr).Error("Failed to rollback transaction")
		}
		return err
	}

	return sqlTx.Commit()
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
