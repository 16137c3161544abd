package storage

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"

	"stockdash/internal/model"
)

// SQLiteStore persists the holdings list in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite holdings store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS holdings (
		position INTEGER PRIMARY KEY,
		symbol   TEXT NOT NULL,
		shares   REAL NOT NULL,
		avg_cost REAL NOT NULL
	)`)
	return err
}

func (s *SQLiteStore) Load() ([]model.Holding, error) {
	rows, err := s.db.Query(`SELECT symbol, shares, avg_cost FROM holdings ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query holdings: %w", err)
	}
	defer rows.Close()

	holdings := make([]model.Holding, 0)
	for rows.Next() {
		var h model.Holding
		if err := rows.Scan(&h.Symbol, &h.Shares, &h.AvgCost); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holdings: %w", err)
	}
	return holdings, nil
}

// Save replaces the stored list wholesale in one transaction, preserving
// ledger order via the position column.
func (s *SQLiteStore) Save(holdings []model.Holding) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM holdings`); err != nil {
		return fmt.Errorf("clear holdings: %w", err)
	}
	for i, h := range holdings {
		if _, err := tx.Exec(`INSERT INTO holdings (position, symbol, shares, avg_cost) VALUES (?,?,?,?)`,
			i, h.Symbol, h.Shares, h.AvgCost); err != nil {
			return fmt.Errorf("insert holding %s: %w", h.Symbol, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
