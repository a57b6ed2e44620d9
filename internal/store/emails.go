package store

import (
	"database/sql"
	"fmt"
)

// Email is a stored email record (draft, reminder or general).
type Email struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	Status    string `json:"status"`
}

// CreateEmail inserts an email and returns it with its assigned id.
func (s *Store) CreateEmail(e Email) (Email, error) {
	if e.Type == "" {
		e.Type = "general"
	}
	if e.Status == "" {
		e.Status = "Unread"
	}
	res, err := s.db.Exec(`INSERT INTO emails
		(user_id, email, recipient, subject, content, type, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Email, e.Recipient, e.Subject, e.Content, e.Type, e.Status)
	if err != nil {
		return Email{}, fmt.Errorf("create email: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return e, nil
}

const emailColumns = `id, user_id, email, recipient, subject, content, type, status`

// ListEmails returns all emails in insertion order.
func (s *Store) ListEmails() ([]Email, error) {
	return s.queryEmails(`SELECT ` + emailColumns + ` FROM emails ORDER BY id`)
}

// ListEmailsByStatus returns emails with the given status.
func (s *Store) ListEmailsByStatus(status string) ([]Email, error) {
	return s.queryEmails(`SELECT `+emailColumns+` FROM emails WHERE status = ? ORDER BY id`, status)
}

// ListEmailsByTypeStatus returns emails matching both type and status.
func (s *Store) ListEmailsByTypeStatus(emailType, status string) ([]Email, error) {
	return s.queryEmails(`SELECT `+emailColumns+` FROM emails WHERE type = ? AND status = ? ORDER BY id`, emailType, status)
}

func (s *Store) queryEmails(query string, args ...any) ([]Email, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	defer rows.Close()

	result := []Email{}
	for rows.Next() {
		var e Email
		if err := rows.Scan(&e.ID, &e.UserID, &e.Email, &e.Recipient, &e.Subject, &e.Content, &e.Type, &e.Status); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetEmail fetches one email by id.
func (s *Store) GetEmail(id int64) (Email, error) {
	var e Email
	err := s.db.QueryRow(`SELECT `+emailColumns+` FROM emails WHERE id = ?`, id).
		Scan(&e.ID, &e.UserID, &e.Email, &e.Recipient, &e.Subject, &e.Content, &e.Type, &e.Status)
	if err == sql.ErrNoRows {
		return Email{}, ErrNotFound
	}
	if err != nil {
		return Email{}, fmt.Errorf("get email: %w", err)
	}
	return e, nil
}
