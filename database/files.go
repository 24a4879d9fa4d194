package database

import "database/sql"

// FileHash возвращает сохранённый sha1 файла расписания
func (db *DB) FileHash(name string) (string, error) {
	var hash string
	err := db.runner().queryRow("SELECT hash FROM files WHERE name = ?", name).Scan(&hash)
	return hash, notFound(err)
}

func (db *DB) SetFileHash(name, hash string) error {
	r := db.runner()

	var id int64
	err := r.queryRow("SELECT id FROM files WHERE name = ?", name).Scan(&id)
	switch {
	case err == nil:
		_, err = r.exec("UPDATE files SET hash = ? WHERE id = ?", hash, id)
		return err
	case err == sql.ErrNoRows:
		_, err = r.exec("INSERT INTO files (name, hash) VALUES (?, ?)", name, hash)
		return err
	default:
		return err
	}
}
