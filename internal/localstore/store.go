package localstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store хранит JSON-документы леджеров в локальной базе SQLite,
// по одному документу на имя хранилища.
type Store struct {
	db *sql.DB
}

// Open открывает локальное хранилище и создает схему при необходимости.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS stores (
			name TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("create stores table: %w", err)
	}

	return &Store{db: db}, nil
}

// Load читает документ хранилища в value. Возвращает false, если документа нет.
func (s *Store) Load(name string, value any) (bool, error) {
	var data []byte

	err := s.db.QueryRow(`SELECT data FROM stores WHERE name = ?`, name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("decode store %s: %w", name, err)
	}

	return true, nil
}

// Save сериализует value и перезаписывает документ хранилища целиком.
func (s *Store) Save(name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode store %s: %w", name, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO stores (name, data, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		name, data,
	)
	return err
}

// Close закрывает базу хранилища.
func (s *Store) Close() error {
	return s.db.Close()
}
