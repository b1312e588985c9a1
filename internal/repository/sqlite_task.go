package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/wbs/internal/db"
	"github.com/alexanderramin/wbs/internal/domain"
)

const taskColumns = `id, project_id, parent_id, order_index, title, assignee_id,
	due_date, estimate_hours, done, created_at, updated_at`

// SQLiteTaskRepo reads and writes the external_tasks source list.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.ExternalTask) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO external_tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.ProjectID,
		t.ParentID,
		t.Order,
		t.Title,
		t.AssigneeID,
		nullableTimeToString(t.DueDate, dateLayout),
		t.EstimateHours,
		boolToInt(t.Done),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting external task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ExternalTask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM external_tasks WHERE project_id = ? ORDER BY order_index, created_at, id`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("listing external tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.ExternalTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating external tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(s scanner) (*domain.ExternalTask, error) {
	var t domain.ExternalTask
	var parentID, assigneeID, dueDate sql.NullString
	var done int
	var createdAt, updatedAt string

	if err := s.Scan(
		&t.ID, &t.ProjectID, &parentID, &t.Order, &t.Title, &assigneeID,
		&dueDate, &t.EstimateHours, &done, &createdAt, &updatedAt,
	); err != nil {
		return nil, fmt.Errorf("scanning external task: %w", err)
	}

	if parentID.Valid {
		t.ParentID = &parentID.String
	}
	if assigneeID.Valid {
		t.AssigneeID = &assigneeID.String
	}
	t.DueDate = parseNullableTime(dueDate, dateLayout)
	t.Done = intToBool(done)

	var err error
	if t.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
