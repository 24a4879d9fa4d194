package database

import (
	"database/sql"
)

// RegisterUser добавляет пользователя, если его ещё нет
func (db *DB) RegisterUser(tid int64) error {
	r := db.runner()

	var id int64
	err := r.queryRow("SELECT id FROM active_users WHERE tid = ?", tid).Scan(&id)
	switch {
	case err == nil:
		return nil
	case err == sql.ErrNoRows:
		_, err = r.exec("INSERT INTO active_users (tid) VALUES (?)", tid)
		return err
	default:
		return err
	}
}

// GetUser возвращает пользователя вместе с названием его группы
func (db *DB) GetUser(tid int64) (ActiveUser, error) {
	var (
		u       ActiveUser
		groupID sql.NullInt64
		group   sql.NullString
	)
	err := db.runner().queryRow(`
		SELECT u.id, u.tid, u.group_id, g.name, u.vip
		FROM active_users u
		LEFT JOIN groups g ON g.id = u.group_id
		WHERE u.tid = ?`, tid,
	).Scan(&u.ID, &u.TID, &groupID, &group, &u.VIP)
	if err != nil {
		return u, notFound(err)
	}
	if groupID.Valid {
		u.GroupID = &groupID.Int64
	}
	u.Group = group.String
	return u, nil
}

// SetUserGroup привязывает пользователя к группе; пустое имя отвязывает
func (db *DB) SetUserGroup(tid int64, group string) error {
	if err := db.RegisterUser(tid); err != nil {
		return err
	}

	r := db.runner()
	if group == "" {
		_, err := r.exec("UPDATE active_users SET group_id = NULL WHERE tid = ?", tid)
		return err
	}

	var groupID int64
	if err := r.queryRow("SELECT id FROM groups WHERE name = ?", group).Scan(&groupID); err != nil {
		return notFound(err)
	}
	_, err := r.exec("UPDATE active_users SET group_id = ? WHERE tid = ?", groupID, tid)
	return err
}

// SetVIP включает утреннюю рассылку пользователю
func (db *DB) SetVIP(tid int64, vip bool) error {
	_, err := db.runner().exec("UPDATE active_users SET vip = ? WHERE tid = ?", vip, tid)
	return err
}

// GetVIPUsers - пользователи с привязанной группой и включённой рассылкой
func (db *DB) GetVIPUsers() ([]ActiveUser, error) {
	rows, err := db.runner().query(`
		SELECT u.id, u.tid, u.group_id, g.name, u.vip
		FROM active_users u
		JOIN groups g ON g.id = u.group_id
		WHERE u.vip = ?`, true)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []ActiveUser
	for rows.Next() {
		var (
			u       ActiveUser
			groupID int64
		)
		if err := rows.Scan(&u.ID, &u.TID, &groupID, &u.Group, &u.VIP); err != nil {
			return nil, err
		}
		u.GroupID = &groupID
		users = append(users, u)
	}
	return users, rows.Err()
}

func (db *DB) CountUsers() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM active_users").Scan(&count)
	return count, err
}
