package store

import "fmt"

// Job is an assignable unit of work with a start and end date. Jobs are
// write/list only; no workflow transitions exist for them.
type Job struct {
	ID          int64  `json:"id"`
	JobTitle    string `json:"job_title"`
	AssignedTo  string `json:"assigned_to"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// CreateJob inserts a job and returns it with its assigned id.
func (s *Store) CreateJob(j Job) (Job, error) {
	if j.Status == "" {
		j.Status = "Open"
	}
	res, err := s.db.Exec(`INSERT INTO jobs
		(job_title, assigned_to, status, start_date, end_date, description)
		VALUES (?, ?, ?, ?, ?, ?)`,
		j.JobTitle, j.AssignedTo, j.Status, j.StartDate, j.EndDate, j.Description)
	if err != nil {
		return Job{}, fmt.Errorf("create job: %w", err)
	}
	j.ID, _ = res.LastInsertId()
	return j, nil
}

// ListJobs returns all jobs in insertion order.
func (s *Store) ListJobs() ([]Job, error) {
	rows, err := s.db.Query(`SELECT id, job_title, assigned_to, status, start_date, end_date, description FROM jobs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	result := []Job{}
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.JobTitle, &j.AssignedTo, &j.Status, &j.StartDate, &j.EndDate, &j.Description); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		result = append(result, j)
	}
	return result, rows.Err()
}
