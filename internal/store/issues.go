package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateIssue(projectID int64, title, color, status string) (*Issue, error) {
	if status == "" {
		status = StatusNotStarted
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO issues (project_id, title, color, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		projectID, title, color, status, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert issue: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetIssue(id)
}

func (s *Store) GetIssue(id int64) (*Issue, error) {
	i := &Issue{}
	var createdAt, updatedAt string
	var archived int
	err := s.db.QueryRow(
		`SELECT id, project_id, title, color, status, archived, created_at, updated_at FROM issues WHERE id = ?`, id,
	).Scan(&i.ID, &i.ProjectID, &i.Title, &i.Color, &i.Status, &archived, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get issue %d: %w", id, err)
	}
	i.Archived = archived == 1
	i.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	i.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return i, nil
}

func (s *Store) ListIssues(projectID int64, includeArchived bool) ([]Issue, error) {
	query := `SELECT id, project_id, title, color, status, archived, created_at, updated_at FROM issues WHERE project_id = ?`
	if !includeArchived {
		query += ` AND archived = 0`
	}
	query += ` ORDER BY title`

	rows, err := s.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var issues []Issue
	for rows.Next() {
		var i Issue
		var createdAt, updatedAt string
		var archived int
		if err := rows.Scan(&i.ID, &i.ProjectID, &i.Title, &i.Color, &i.Status, &archived, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		i.Archived = archived == 1
		i.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		i.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		issues = append(issues, i)
	}
	return issues, rows.Err()
}

func (s *Store) UpdateIssue(id int64, title, color, status string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE issues SET title = ?, color = ?, status = ?, updated_at = ? WHERE id = ?`,
		title, color, status, now, id,
	)
	return err
}

func (s *Store) ArchiveIssue(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE issues SET archived = 1, updated_at = ? WHERE id = ?`, now, id,
	)
	return err
}
