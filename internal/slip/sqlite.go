package slip

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const createLedgerSQL = `
CREATE TABLE IF NOT EXISTS daily_slips (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    atm_id INTEGER NOT NULL,
    user_id TEXT NOT NULL DEFAULT '',
    name TEXT NOT NULL,
    hundred INTEGER,
    two_hundred INTEGER,
    five_hundred INTEGER,
    created_at INTEGER NOT NULL,
    UNIQUE (date, atm_id, user_id)
);`

// SQLiteDB implements the Store interface using SQLite. The unique
// index on (date, atm_id, user_id) makes the duplicate check part of
// the insert itself, which BoltDB gets from its single write
// transaction.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens a SQLite ledger at path and ensures the schema.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}
	if _, err := db.Exec(createLedgerSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger table: %w", err)
	}
	return &SQLiteDB{db: db}, nil
}

// Insert creates a record, mapping a unique-constraint violation to
// ErrDuplicate.
func (s *SQLiteDB) Insert(record *Record) error {
	_, err := s.db.Exec(
		`INSERT INTO daily_slips (date, atm_id, user_id, name, hundred, two_hundred, five_hundred, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Date,
		record.ATMID,
		record.UserID,
		record.Name,
		record.Hundred,
		record.TwoHundred,
		record.FiveHundred,
		record.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

// Exists reports whether a record exists for the key.
func (s *SQLiteDB) Exists(date string, atmID int, userID string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM daily_slips WHERE date = ? AND atm_id = ? AND user_id = ?`,
		date, atmID, userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking record: %w", err)
	}
	return true, nil
}

// List returns all records for a date and user, ordered by ATM id.
func (s *SQLiteDB) List(date string, userID string) ([]*Record, error) {
	rows, err := s.db.Query(
		`SELECT date, atm_id, user_id, name, hundred, two_hundred, five_hundred, created_at
		 FROM daily_slips WHERE date = ? AND user_id = ? ORDER BY atm_id`,
		date, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	records := make([]*Record, 0)
	for rows.Next() {
		var (
			record    Record
			hundred   sql.NullInt64
			twoH      sql.NullInt64
			fiveH     sql.NullInt64
			createdAt int64
		)
		if err := rows.Scan(&record.Date, &record.ATMID, &record.UserID, &record.Name, &hundred, &twoH, &fiveH, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		record.Hundred = fromNullInt(hundred)
		record.TwoHundred = fromNullInt(twoH)
		record.FiveHundred = fromNullInt(fiveH)
		record.CreatedAt = time.UnixMilli(createdAt).UTC()
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return records, nil
}

// Close closes the database.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
