package store

// Schema creates all record tables. Records are append-only: nothing in the
// application ever deletes a row.
const Schema = `
CREATE TABLE IF NOT EXISTS timesheets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL,
	from_time TEXT NOT NULL DEFAULT '',
	to_time TEXT NOT NULL DEFAULT '',
	task_summary TEXT NOT NULL DEFAULT '',
	total_hours INTEGER NOT NULL DEFAULT 0,
	submitted BOOLEAN NOT NULL DEFAULT 0,
	approved_by TEXT
);

CREATE TABLE IF NOT EXISTS leaves (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL,
	leave_type TEXT NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'Pending',
	approved_by TEXT,
	approval_comment TEXT
);

CREATE TABLE IF NOT EXISTS emails (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	recipient TEXT NOT NULL,
	subject TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL DEFAULT 'general',
	status TEXT NOT NULL DEFAULT 'Unread'
);

CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT 'Medium',
	status TEXT NOT NULL DEFAULT 'Pending'
);

CREATE TABLE IF NOT EXISTS jobs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	job_title TEXT NOT NULL,
	assigned_to TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'Open',
	start_date TEXT NOT NULL DEFAULT '',
	end_date TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_timesheets_submitted ON timesheets(submitted);
CREATE INDEX IF NOT EXISTS idx_leaves_status ON leaves(status);
CREATE INDEX IF NOT EXISTS idx_emails_status ON emails(status);
`
