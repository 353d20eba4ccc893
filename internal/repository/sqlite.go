package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const draftsTable = "drafts"

// SQLiteStorage хранит значения в одном локальном файле SQLite
type SQLiteStorage struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	if db == nil {
		panic("nil sqlite db")
	}
	return &SQLiteStorage{
		db:  db,
		now: time.Now,
	}
}

// OpenSQLite открывает файл базы. Одно соединение: SQLite всё равно сериализует запись.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

func (s *SQLiteStorage) SetItem(ctx context.Context, key string, value string) error {
	query, args, err := sq.Insert(draftsTable).
		Columns("form_id", "payload", "updated_at").
		Values(key, value, s.now().UTC()).
		Suffix("ON CONFLICT(form_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set item: %w", classifySQLiteErr(err))
	}
	return nil
}

func (s *SQLiteStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	query, args, err := sq.Select("payload").
		From(draftsTable).
		Where(squirrel.Eq{"form_id": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build select: %w", err)
	}

	var payload string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item: %w", classifySQLiteErr(err))
	}
	return payload, true, nil
}

func (s *SQLiteStorage) RemoveItem(ctx context.Context, key string) error {
	query, args, err := sq.Delete(draftsTable).
		Where(squirrel.Eq{"form_id": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove item: %w", classifySQLiteErr(err))
	}
	return nil
}

// classifySQLiteErr переводит коды SQLite в ошибки хранилища.
// Переполнение диска для вызывающего то же, что превышение квоты localStorage.
func classifySQLiteErr(err error) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_FULL:
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_READONLY:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
