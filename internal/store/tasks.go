package store

import "fmt"

// Task is a tracked work item.
type Task struct {
	ID          int64  `json:"id"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// CreateTask inserts a task and returns it with its assigned id.
func (s *Store) CreateTask(t Task) (Task, error) {
	if t.Priority == "" {
		t.Priority = "Medium"
	}
	if t.Status == "" {
		t.Status = "Pending"
	}
	res, err := s.db.Exec(`INSERT INTO tasks
		(user_id, email, title, description, priority, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Email, t.Title, t.Description, t.Priority, t.Status)
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}
	t.ID, _ = res.LastInsertId()
	return t, nil
}

// ListTasks returns all tasks in insertion order.
func (s *Store) ListTasks() ([]Task, error) {
	rows, err := s.db.Query(`SELECT id, user_id, email, title, description, priority, status FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	result := []Task{}
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Email, &t.Title, &t.Description, &t.Priority, &t.Status); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
