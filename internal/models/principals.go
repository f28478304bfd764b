package models

import (
	"database/sql"
	"errors"
	"strings"
)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func CreateAdmin(db *sql.DB, a *Admin) error {
	_, err := db.Exec(`INSERT INTO admins (admin_id, username, password_hash) VALUES (?, ?, ?)`,
		a.AdminID, a.Username, a.PasswordHash)
	if isUniqueViolation(err) {
		return ErrDuplicateUsername
	}
	return err
}

func GetAdminByUsername(db *sql.DB, username string) (*Admin, error) {
	row := db.QueryRow(`SELECT admin_id, username, password_hash, created_at FROM admins WHERE username = ?`, username)
	var a Admin
	if err := row.Scan(&a.AdminID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func ListAdmins(db *sql.DB) ([]Admin, error) {
	rows, err := db.Query(`SELECT admin_id, username, password_hash, created_at FROM admins ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var admins []Admin
	for rows.Next() {
		var a Admin
		if err := rows.Scan(&a.AdminID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func CreateWriter(db *sql.DB, w *Writer) error {
	_, err := db.Exec(`INSERT INTO writers (writer_id, username, password_hash, writer_name) VALUES (?, ?, ?, ?)`,
		w.WriterID, w.Username, w.PasswordHash, w.WriterName)
	if isUniqueViolation(err) {
		return ErrDuplicateUsername
	}
	return err
}

func GetWriterByUsername(db *sql.DB, username string) (*Writer, error) {
	row := db.QueryRow(`SELECT writer_id, username, password_hash, writer_name, created_at FROM writers WHERE username = ?`, username)
	var w Writer
	if err := row.Scan(&w.WriterID, &w.Username, &w.PasswordHash, &w.WriterName, &w.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func ListWriters(db *sql.DB) ([]Writer, error) {
	rows, err := db.Query(`SELECT writer_id, username, password_hash, writer_name, created_at FROM writers ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var writers []Writer
	for rows.Next() {
		var w Writer
		if err := rows.Scan(&w.WriterID, &w.Username, &w.PasswordHash, &w.WriterName, &w.CreatedAt); err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}
	return writers, rows.Err()
}

func DeleteWriter(db *sql.DB, writerID string) error {
	res, err := db.Exec(`DELETE FROM writers WHERE writer_id = ?`, writerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
