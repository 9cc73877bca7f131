package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"attendance-bot/internal/domain/models"
	"attendance-bot/internal/storage"

	_ "github.com/mattn/go-sqlite3"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.sqlite.New"

	if dir := filepath.Dir(storagePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS punches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			action TEXT NOT NULL,
			status TEXT NOT NULL,
			message TEXT,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_punches_created_at ON punches(created_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) SavePunch(ctx context.Context, punch models.Punch) (int64, error) {
	const op = "storage.sqlite.SavePunch"

	stmt, err := s.db.PrepareContext(ctx, `INSERT INTO punches (action, status, message, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, string(punch.Action), punch.Status, punch.Message, punch.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Punches returns up to limit punches, newest first.
func (s *Storage) Punches(ctx context.Context, limit int) ([]models.Punch, error) {
	const op = "storage.sqlite.Punches"

	if limit <= 0 {
		return []models.Punch{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, action, status, message, created_at FROM punches ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	punches := make([]models.Punch, 0, limit)
	for rows.Next() {
		var (
			p      models.Punch
			action string
			msg    sql.NullString
		)
		if err := rows.Scan(&p.ID, &action, &p.Status, &msg, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Action = models.Action(action)
		p.Message = msg.String
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return punches, nil
}

func (s *Storage) Punch(ctx context.Context, id int64) (models.Punch, error) {
	const op = "storage.sqlite.Punch"

	stmt, err := s.db.PrepareContext(ctx, `SELECT id, action, status, message, created_at FROM punches WHERE id = ?`)
	if err != nil {
		return models.Punch{}, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	var (
		p      models.Punch
		action string
		msg    sql.NullString
	)
	err = stmt.QueryRowContext(ctx, id).Scan(&p.ID, &action, &p.Status, &msg, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Punch{}, fmt.Errorf("%s: %w", op, storage.ErrPunchNotFound)
		}
		return models.Punch{}, fmt.Errorf("%s: %w", op, err)
	}
	p.Action = models.Action(action)
	p.Message = msg.String

	return p, nil
}
