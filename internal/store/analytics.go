package store

import (
	"database/sql"
	"fmt"
	"time"
)

// StatusCount is the number of tasks in one status.
type StatusCount struct {
	Status string
	Count  int
}

// ProjectCount is the number of open (non-archived) tasks under one project.
type ProjectCount struct {
	ProjectID   int64
	ProjectName string
	Color       string
	Count       int
}

// DueTask is a task joined with its issue and project context, used for the
// dashboard's due-soon list and the schedule export.
type DueTask struct {
	Task        Task
	IssueTitle  string
	ProjectName string
}

// CountTasksByStatus aggregates non-archived tasks per status.
func (s *Store) CountTasksByStatus() ([]StatusCount, error) {
	rows, err := s.db.Query(
		`SELECT status, COUNT(*) FROM tasks WHERE archived = 0 GROUP BY status`,
	)
	if err != nil {
		return nil, fmt.Errorf("count tasks by status: %w", err)
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CountTasksPerProject aggregates non-archived tasks per project.
func (s *Store) CountTasksPerProject() ([]ProjectCount, error) {
	rows, err := s.db.Query(
		`SELECT p.id, p.name, p.color, COUNT(t.id)
		 FROM projects p
		 JOIN issues i ON i.project_id = p.id AND i.archived = 0
		 JOIN tasks t ON t.issue_id = i.id AND t.archived = 0
		 WHERE p.archived = 0
		 GROUP BY p.id, p.name, p.color
		 ORDER BY COUNT(t.id) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("count tasks per project: %w", err)
	}
	defer rows.Close()

	var counts []ProjectCount
	for rows.Next() {
		var c ProjectCount
		if err := rows.Scan(&c.ProjectID, &c.ProjectName, &c.Color, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// DueSoon returns unfinished tasks whose end date falls in [from, to),
// soonest first.
func (s *Store) DueSoon(from, to time.Time, limit int) ([]DueTask, error) {
	rows, err := s.db.Query(
		`SELECT t.id, t.issue_id, t.name, t.start_date, t.end_date, t.status, t.importance, t.color,
		        i.title, p.name
		 FROM tasks t
		 JOIN issues i ON i.id = t.issue_id
		 JOIN projects p ON p.id = i.project_id
		 WHERE t.archived = 0
		   AND t.status NOT IN (?, ?)
		   AND t.end_date >= ? AND t.end_date < ?
		 ORDER BY t.end_date
		 LIMIT ?`,
		StatusCompleted, StatusDiscarded,
		from.Format(DateLayout), to.Format(DateLayout), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("due soon: %w", err)
	}
	defer rows.Close()
	return scanDueTasks(rows)
}

// ListSchedule returns every non-archived task with its context, ordered by
// project, issue, then start date. It feeds the CSV/JSON export.
func (s *Store) ListSchedule() ([]DueTask, error) {
	rows, err := s.db.Query(
		`SELECT t.id, t.issue_id, t.name, t.start_date, t.end_date, t.status, t.importance, t.color,
		        i.title, p.name
		 FROM tasks t
		 JOIN issues i ON i.id = t.issue_id
		 JOIN projects p ON p.id = i.project_id
		 WHERE t.archived = 0 AND i.archived = 0 AND p.archived = 0
		 ORDER BY p.name, i.title, t.start_date IS NULL, t.start_date, t.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	defer rows.Close()
	return scanDueTasks(rows)
}

func scanDueTasks(rows *sql.Rows) ([]DueTask, error) {
	var out []DueTask
	for rows.Next() {
		var d DueTask
		var startDate, endDate sql.NullString
		if err := rows.Scan(&d.Task.ID, &d.Task.IssueID, &d.Task.Name, &startDate, &endDate,
			&d.Task.Status, &d.Task.Importance, &d.Task.Color, &d.IssueTitle, &d.ProjectName); err != nil {
			return nil, err
		}
		d.Task.StartDate = parseDate(startDate)
		d.Task.EndDate = parseDate(endDate)
		out = append(out, d)
	}
	return out, rows.Err()
}
