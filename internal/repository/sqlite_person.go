package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/wbs/internal/db"
	"github.com/alexanderramin/wbs/internal/domain"
)

// SQLitePersonRepo is the employee directory.
type SQLitePersonRepo struct {
	db db.DBTX
}

func NewSQLitePersonRepo(db db.DBTX) *SQLitePersonRepo {
	return &SQLitePersonRepo{db: db}
}

func (r *SQLitePersonRepo) Create(ctx context.Context, p *domain.Person) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO people (id, display_name, email, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.DisplayName, p.Email, formatTimestamp(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting person: %w", err)
	}
	return nil
}

func (r *SQLitePersonRepo) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, display_name, email, created_at FROM people WHERE id = ?`, id)
	p, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %s: %w", id, domain.ErrNotFound)
	}
	return p, err
}

func (r *SQLitePersonRepo) List(ctx context.Context) ([]*domain.Person, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, display_name, email, created_at FROM people ORDER BY display_name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var people []*domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}
	return people, nil
}

func scanPerson(s scanner) (*domain.Person, error) {
	var p domain.Person
	var createdAt string
	if err := s.Scan(&p.ID, &p.DisplayName, &p.Email, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning person: %w", err)
	}
	var err error
	if p.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	return &p, nil
}
