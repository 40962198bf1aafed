package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/solsticehq/lumen/internal/model"
	"github.com/solsticehq/lumen/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx, so
// every query is written once and runs either standalone or inside a
// transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.db.PingContext(ctx)
}

// BeginTx starts a new database transaction.
func (s *SQLiteStorage) BeginTx(ctx context.Context) (service.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &sqliteTransaction{tx: tx, storage: s}, nil
}

// sqliteTransaction wraps sql.Tx to implement service.Transaction.
type sqliteTransaction struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTransaction) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTransaction) Rollback() error {
	return t.tx.Rollback()
}

func (t *sqliteTransaction) CreateGoal(ctx context.Context, goal *model.Goal) error {
	return t.storage.createGoal(ctx, t.tx, goal)
}

func (t *sqliteTransaction) GetGoal(ctx context.Context, id string) (*model.Goal, error) {
	return t.storage.getGoal(ctx, t.tx, id)
}

func (t *sqliteTransaction) ListGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	return t.storage.listGoals(ctx, t.tx, userID)
}

func (t *sqliteTransaction) UpdateGoalWidgetID(ctx context.Context, goalID, widgetID string) error {
	return t.storage.updateGoalWidgetID(ctx, t.tx, goalID, widgetID)
}

func (t *sqliteTransaction) CountActiveGoals(ctx context.Context, userID string) (int, error) {
	return t.storage.countActiveGoals(ctx, t.tx, userID)
}

func (t *sqliteTransaction) CreateWidget(ctx context.Context, widget *model.Widget) error {
	return t.storage.createWidget(ctx, t.tx, widget)
}

func (t *sqliteTransaction) GetWidget(ctx context.Context, id string) (*model.Widget, error) {
	return t.storage.getWidget(ctx, t.tx, id)
}

func (t *sqliteTransaction) ListWidgets(ctx context.Context, userID string) ([]model.Widget, error) {
	return t.storage.listWidgets(ctx, t.tx, userID)
}

func (t *sqliteTransaction) CountWidgets(ctx context.Context, userID string) (int, error) {
	return t.storage.countWidgets(ctx, t.tx, userID)
}

func (t *sqliteTransaction) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	return t.storage.createReminder(ctx, t.tx, reminder)
}

func (t *sqliteTransaction) ListReminders(ctx context.Context, userID string) ([]model.Reminder, error) {
	return t.storage.listReminders(ctx, t.tx, userID)
}

func (t *sqliteTransaction) Migrate(_ context.Context) error {
	return fmt.Errorf("migrations cannot be run within a transaction")
}

func (t *sqliteTransaction) Ping(ctx context.Context) error {
	return t.storage.Ping(ctx)
}

func (t *sqliteTransaction) BeginTx(_ context.Context) (service.Transaction, error) {
	return nil, fmt.Errorf("nested transactions not supported")
}

func (t *sqliteTransaction) Close() error {
	return fmt.Errorf("transactions must be committed or rolled back, not closed")
}
