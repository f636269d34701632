package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateNote(title, body string) (*Note, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO notes (title, body, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		title, body, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetNote(id)
}

func (s *Store) GetNote(id int64) (*Note, error) {
	n := &Note{}
	var createdAt, updatedAt string
	var pinned int
	err := s.db.QueryRow(
		`SELECT id, title, body, pinned, created_at, updated_at FROM notes WHERE id = ?`, id,
	).Scan(&n.ID, &n.Title, &n.Body, &pinned, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get note %d: %w", id, err)
	}
	n.Pinned = pinned == 1
	n.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	n.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return n, nil
}

// ListNotes returns notes with pinned ones first, newest first within each group.
func (s *Store) ListNotes() ([]Note, error) {
	rows, err := s.db.Query(
		`SELECT id, title, body, pinned, created_at, updated_at FROM notes ORDER BY pinned DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		var createdAt, updatedAt string
		var pinned int
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &pinned, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		n.Pinned = pinned == 1
		n.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		n.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Store) UpdateNote(id int64, title, body string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE notes SET title = ?, body = ?, updated_at = ? WHERE id = ?`,
		title, body, now, id,
	)
	return err
}

func (s *Store) TogglePinNote(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE notes SET pinned = 1 - pinned, updated_at = ? WHERE id = ?`, now, id,
	)
	return err
}

func (s *Store) DeleteNote(id int64) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	return err
}
