package store

import (
	"database/sql"
	"fmt"
	"time"
)

// DateLayout is the storage format for task start/end dates.
const DateLayout = "2006-01-02"

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(DateLayout)
}

// parseDate turns a stored date string into a calendar day. A value that
// fails to parse is treated as absent, not as an error: a malformed date
// must never block loading the rest of the schedule.
func parseDate(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	d, err := time.Parse(DateLayout, v.String)
	if err != nil {
		return nil
	}
	return &d
}

func (s *Store) CreateTask(issueID int64, name string, start, end *time.Time, status, importance, color string) (*Task, error) {
	if status == "" {
		status = StatusNotStarted
	}
	if importance == "" {
		importance = ImportanceMedium
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO tasks (issue_id, name, start_date, end_date, status, importance, color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		issueID, name, formatDate(start), formatDate(end), status, importance, color, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

func (s *Store) GetTask(id int64) (*Task, error) {
	t := &Task{}
	var startDate, endDate sql.NullString
	var createdAt, updatedAt string
	var archived int
	err := s.db.QueryRow(
		`SELECT id, issue_id, name, start_date, end_date, status, importance, color, archived, created_at, updated_at
		 FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.IssueID, &t.Name, &startDate, &endDate, &t.Status, &t.Importance, &t.Color, &archived, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	t.StartDate = parseDate(startDate)
	t.EndDate = parseDate(endDate)
	t.Archived = archived == 1
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return t, nil
}

func (s *Store) ListTasks(issueID int64, includeArchived bool) ([]Task, error) {
	query := `SELECT id, issue_id, name, start_date, end_date, status, importance, color, archived, created_at, updated_at
	          FROM tasks WHERE issue_id = ?`
	if !includeArchived {
		query += ` AND archived = 0`
	}
	query += ` ORDER BY start_date IS NULL, start_date, name`

	rows, err := s.db.Query(query, issueID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var startDate, endDate sql.NullString
		var createdAt, updatedAt string
		var archived int
		if err := rows.Scan(&t.ID, &t.IssueID, &t.Name, &startDate, &endDate, &t.Status, &t.Importance, &t.Color, &archived, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		t.StartDate = parseDate(startDate)
		t.EndDate = parseDate(endDate)
		t.Archived = archived == 1
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(id int64, name string, start, end *time.Time, status, importance, color string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE tasks SET name = ?, start_date = ?, end_date = ?, status = ?, importance = ?, color = ?, updated_at = ? WHERE id = ?`,
		name, formatDate(start), formatDate(end), status, importance, color, now, id,
	)
	return err
}

func (s *Store) ArchiveTask(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE tasks SET archived = 1, updated_at = ? WHERE id = ?`, now, id,
	)
	return err
}
