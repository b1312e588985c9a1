package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/wbs/internal/db"
	"github.com/alexanderramin/wbs/internal/domain"
)

// SQLiteCollectionRepo keeps one row per project in wbs_collections with the
// node array serialized as JSON.
type SQLiteCollectionRepo struct {
	db db.DBTX
}

func NewSQLiteCollectionRepo(db db.DBTX) *SQLiteCollectionRepo {
	return &SQLiteCollectionRepo{db: db}
}

func (r *SQLiteCollectionRepo) Load(ctx context.Context, projectID string) (*domain.Collection, error) {
	var revision int64
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT revision, nodes FROM wbs_collections WHERE project_id = ?`, projectID,
	).Scan(&revision, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.Collection{ProjectID: projectID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading wbs for project %s: %w", projectID, err)
	}

	nodes, err := decodeNodes(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding wbs for project %s: %w", projectID, err)
	}
	return &domain.Collection{ProjectID: projectID, Revision: revision, Nodes: nodes}, nil
}

func (r *SQLiteCollectionRepo) Save(ctx context.Context, c *domain.Collection) error {
	payload, err := encodeNodes(c.Nodes)
	if err != nil {
		return fmt.Errorf("encoding wbs for project %s: %w", c.ProjectID, err)
	}
	now := formatTimestamp(time.Now())

	var res sql.Result
	if c.Revision == 0 {
		res, err = r.db.ExecContext(ctx,
			`INSERT INTO wbs_collections (project_id, revision, nodes, updated_at)
			VALUES (?, 1, ?, ?)
			ON CONFLICT(project_id) DO NOTHING`,
			c.ProjectID, payload, now)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE wbs_collections SET revision = revision + 1, nodes = ?, updated_at = ?
			WHERE project_id = ? AND revision = ?`,
			payload, now, c.ProjectID, c.Revision)
	}
	if err != nil {
		return fmt.Errorf("saving wbs for project %s: %w", c.ProjectID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving wbs for project %s: %w", c.ProjectID, err)
	}
	if n == 0 {
		return fmt.Errorf("saving wbs for project %s at revision %d: %w", c.ProjectID, c.Revision, domain.ErrConflict)
	}
	c.Revision++
	return nil
}

func (r *SQLiteCollectionRepo) ListProjectIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT project_id FROM wbs_collections ORDER BY project_id`)
	if err != nil {
		return nil, fmt.Errorf("listing wbs projects: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning wbs project id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wbs projects: %w", err)
	}
	return ids, nil
}

// nodeRecord is the stored shape of a node. Dates are plain YYYY-MM-DD
// strings; audit timestamps keep sub-second precision because they break
// sibling-order ties.
type nodeRecord struct {
	ID              string   `json:"id"`
	ProjectID       string   `json:"project_id"`
	ParentID        *string  `json:"parent_id"`
	Order           int      `json:"order"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	OwnerID         *string  `json:"owner_id,omitempty"`
	StartDate       *string  `json:"start_date,omitempty"`
	FinishDate      *string  `json:"finish_date,omitempty"`
	EffortHours     float64  `json:"effort_hours"`
	Cost            float64  `json:"cost"`
	PercentComplete int      `json:"percent_complete"`
	Status          string   `json:"status"`
	Predecessors    []string `json:"predecessors,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func encodeNodes(nodes []domain.Node) (string, error) {
	records := make([]nodeRecord, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		records[i] = nodeRecord{
			ID:              n.ID,
			ProjectID:       n.ProjectID,
			ParentID:        n.ParentID,
			Order:           n.Order,
			Name:            n.Name,
			Type:            string(n.Type),
			OwnerID:         n.OwnerID,
			StartDate:       datePtrToString(n.StartDate),
			FinishDate:      datePtrToString(n.FinishDate),
			EffortHours:     n.EffortHours,
			Cost:            n.Cost,
			PercentComplete: n.PercentComplete,
			Status:          string(n.Status),
			Predecessors:    n.Predecessors,
			CreatedAt:       formatTimestamp(n.CreatedAt),
			UpdatedAt:       formatTimestamp(n.UpdatedAt),
		}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeNodes(payload string) ([]domain.Node, error) {
	var records []nodeRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, err
	}

	nodes := make([]domain.Node, len(records))
	for i, rec := range records {
		n := domain.Node{
			ID:              rec.ID,
			ProjectID:       rec.ProjectID,
			ParentID:        rec.ParentID,
			Order:           rec.Order,
			Name:            rec.Name,
			Type:            domain.NodeType(rec.Type),
			OwnerID:         rec.OwnerID,
			EffortHours:     rec.EffortHours,
			Cost:            rec.Cost,
			PercentComplete: rec.PercentComplete,
			Status:          domain.NodeStatus(rec.Status),
			Predecessors:    rec.Predecessors,
		}

		var err error
		if n.StartDate, err = stringToDatePtr(rec.StartDate); err != nil {
			return nil, fmt.Errorf("node %s start_date: %w", rec.ID, err)
		}
		if n.FinishDate, err = stringToDatePtr(rec.FinishDate); err != nil {
			return nil, fmt.Errorf("node %s finish_date: %w", rec.ID, err)
		}
		if n.CreatedAt, err = parseTimestamp("created_at", rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("node %s: %w", rec.ID, err)
		}
		if n.UpdatedAt, err = parseTimestamp("updated_at", rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("node %s: %w", rec.ID, err)
		}
		nodes[i] = n
	}
	return nodes, nil
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func stringToDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
