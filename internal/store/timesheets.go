package store

import (
	"database/sql"
	"fmt"
)

// Timesheet is a single day's worked-hours record.
type Timesheet struct {
	ID          int64   `json:"id"`
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	Date        string  `json:"date"`
	FromTime    string  `json:"from_time"`
	ToTime      string  `json:"to_time"`
	TaskSummary string  `json:"task_summary"`
	TotalHours  int     `json:"total_hours"`
	Submitted   bool    `json:"submitted"`
	ApprovedBy  *string `json:"approved_by"`
}

// CreateTimesheet inserts a timesheet and returns it with its assigned id.
func (s *Store) CreateTimesheet(ts Timesheet) (Timesheet, error) {
	res, err := s.db.Exec(`INSERT INTO timesheets
		(user_id, email, date, from_time, to_time, task_summary, total_hours, submitted, approved_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ts.UserID, ts.Email, ts.Date, ts.FromTime, ts.ToTime, ts.TaskSummary, ts.TotalHours, ts.Submitted, ts.ApprovedBy)
	if err != nil {
		return Timesheet{}, fmt.Errorf("create timesheet: %w", err)
	}
	ts.ID, _ = res.LastInsertId()
	return ts, nil
}

const timesheetColumns = `id, user_id, email, date, from_time, to_time, task_summary, total_hours, submitted, approved_by`

func scanTimesheet(row interface{ Scan(...any) error }) (Timesheet, error) {
	var ts Timesheet
	var approvedBy sql.NullString
	err := row.Scan(&ts.ID, &ts.UserID, &ts.Email, &ts.Date, &ts.FromTime, &ts.ToTime,
		&ts.TaskSummary, &ts.TotalHours, &ts.Submitted, &approvedBy)
	if err != nil {
		return Timesheet{}, err
	}
	if approvedBy.Valid {
		ts.ApprovedBy = &approvedBy.String
	}
	return ts, nil
}

// ListTimesheets returns all timesheets in insertion order.
func (s *Store) ListTimesheets() ([]Timesheet, error) {
	return s.queryTimesheets(`SELECT ` + timesheetColumns + ` FROM timesheets ORDER BY id`)
}

// ListPendingTimesheets returns timesheets that have not been submitted yet.
func (s *Store) ListPendingTimesheets() ([]Timesheet, error) {
	return s.queryTimesheets(`SELECT ` + timesheetColumns + ` FROM timesheets WHERE submitted = 0 ORDER BY id`)
}

func (s *Store) queryTimesheets(query string, args ...any) ([]Timesheet, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list timesheets: %w", err)
	}
	defer rows.Close()

	result := []Timesheet{}
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan timesheet: %w", err)
		}
		result = append(result, ts)
	}
	return result, rows.Err()
}

// GetTimesheet fetches one timesheet by id.
func (s *Store) GetTimesheet(id int64) (Timesheet, error) {
	row := s.db.QueryRow(`SELECT `+timesheetColumns+` FROM timesheets WHERE id = ?`, id)
	ts, err := scanTimesheet(row)
	if err == sql.ErrNoRows {
		return Timesheet{}, ErrNotFound
	}
	if err != nil {
		return Timesheet{}, fmt.Errorf("get timesheet: %w", err)
	}
	return ts, nil
}

// UpdateTimesheet fully replaces the timesheet with the given id.
func (s *Store) UpdateTimesheet(id int64, ts Timesheet) (Timesheet, error) {
	res, err := s.db.Exec(`UPDATE timesheets SET
		user_id = ?, email = ?, date = ?, from_time = ?, to_time = ?,
		task_summary = ?, total_hours = ?, submitted = ?, approved_by = ?
		WHERE id = ?`,
		ts.UserID, ts.Email, ts.Date, ts.FromTime, ts.ToTime, ts.TaskSummary,
		ts.TotalHours, ts.Submitted, ts.ApprovedBy, id)
	if err != nil {
		return Timesheet{}, fmt.Errorf("update timesheet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Timesheet{}, ErrNotFound
	}
	return s.GetTimesheet(id)
}

// ApproveTimesheet marks a timesheet as submitted and records the approver.
func (s *Store) ApproveTimesheet(id int64, approver string) (Timesheet, error) {
	res, err := s.db.Exec(`UPDATE timesheets SET submitted = 1, approved_by = ? WHERE id = ?`, approver, id)
	if err != nil {
		return Timesheet{}, fmt.Errorf("approve timesheet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Timesheet{}, ErrNotFound
	}
	return s.GetTimesheet(id)
}

// SubmitPendingTimesheets transitions every unsubmitted timesheet to submitted
// and returns the affected records. The read and the write share one
// transaction so the returned set matches the rows actually transitioned.
func (s *Store) SubmitPendingTimesheets(approver string) ([]Timesheet, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("submit pending timesheets: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT ` + timesheetColumns + ` FROM timesheets WHERE submitted = 0 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("submit pending timesheets: %w", err)
	}
	pending := []Timesheet{}
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan timesheet: %w", err)
		}
		pending = append(pending, ts)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("submit pending timesheets: %w", err)
	}
	rows.Close()

	if len(pending) == 0 {
		return []Timesheet{}, nil
	}
	if _, err := tx.Exec(`UPDATE timesheets SET submitted = 1, approved_by = ? WHERE submitted = 0`, approver); err != nil {
		return nil, fmt.Errorf("submit pending timesheets: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("submit pending timesheets: %w", err)
	}
	for i := range pending {
		pending[i].Submitted = true
		a := approver
		pending[i].ApprovedBy = &a
	}
	return pending, nil
}
