package store

import (
	"database/sql"
	"fmt"
)

// Leave is a leave-of-absence request.
type Leave struct {
	ID              int64   `json:"id"`
	UserID          string  `json:"user_id"`
	Email           string  `json:"email"`
	Date            string  `json:"date"`
	LeaveType       string  `json:"leave_type"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by"`
	ApprovalComment *string `json:"approval_comment"`
}

// LeaveUpdate carries a partial update; nil fields are left untouched.
type LeaveUpdate struct {
	Status          *string `json:"status"`
	ApprovedBy      *string `json:"approved_by"`
	ApprovalComment *string `json:"approval_comment"`
}

// CreateLeave inserts a leave request and returns it with its assigned id.
func (s *Store) CreateLeave(l Leave) (Leave, error) {
	if l.Status == "" {
		l.Status = "Pending"
	}
	res, err := s.db.Exec(`INSERT INTO leaves
		(user_id, email, date, leave_type, reason, status, approved_by, approval_comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.UserID, l.Email, l.Date, l.LeaveType, l.Reason, l.Status, l.ApprovedBy, l.ApprovalComment)
	if err != nil {
		return Leave{}, fmt.Errorf("create leave: %w", err)
	}
	l.ID, _ = res.LastInsertId()
	return l, nil
}

const leaveColumns = `id, user_id, email, date, leave_type, reason, status, approved_by, approval_comment`

func scanLeave(row interface{ Scan(...any) error }) (Leave, error) {
	var l Leave
	var approvedBy, comment sql.NullString
	err := row.Scan(&l.ID, &l.UserID, &l.Email, &l.Date, &l.LeaveType, &l.Reason, &l.Status, &approvedBy, &comment)
	if err != nil {
		return Leave{}, err
	}
	if approvedBy.Valid {
		l.ApprovedBy = &approvedBy.String
	}
	if comment.Valid {
		l.ApprovalComment = &comment.String
	}
	return l, nil
}

// ListLeaves returns all leave requests in insertion order.
func (s *Store) ListLeaves() ([]Leave, error) {
	rows, err := s.db.Query(`SELECT ` + leaveColumns + ` FROM leaves ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	defer rows.Close()

	result := []Leave{}
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// GetLeave fetches one leave request by id.
func (s *Store) GetLeave(id int64) (Leave, error) {
	row := s.db.QueryRow(`SELECT `+leaveColumns+` FROM leaves WHERE id = ?`, id)
	l, err := scanLeave(row)
	if err == sql.ErrNoRows {
		return Leave{}, ErrNotFound
	}
	if err != nil {
		return Leave{}, fmt.Errorf("get leave: %w", err)
	}
	return l, nil
}

// UpdateLeave applies a partial update (status, approver, comment) by id.
func (s *Store) UpdateLeave(id int64, upd LeaveUpdate) (Leave, error) {
	l, err := s.GetLeave(id)
	if err != nil {
		return Leave{}, err
	}
	if upd.Status != nil {
		l.Status = *upd.Status
	}
	if upd.ApprovedBy != nil {
		l.ApprovedBy = upd.ApprovedBy
	}
	if upd.ApprovalComment != nil {
		l.ApprovalComment = upd.ApprovalComment
	}
	_, err = s.db.Exec(`UPDATE leaves SET status = ?, approved_by = ?, approval_comment = ? WHERE id = ?`,
		l.Status, l.ApprovedBy, l.ApprovalComment, id)
	if err != nil {
		return Leave{}, fmt.Errorf("update leave: %w", err)
	}
	return l, nil
}
