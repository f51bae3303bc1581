package supabase

import "strings"

var schemaTemplate = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id {{id}},
		full_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		skills {{json}} NOT NULL DEFAULT '[]',
		hourly_rate {{float}} NOT NULL DEFAULT 0,
		is_freelancer BOOLEAN NOT NULL DEFAULT FALSE,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id {{id}},
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		budget {{float}} NOT NULL DEFAULT 0,
		deadline DATE,
		category TEXT NOT NULL DEFAULT '',
		skills {{json}} NOT NULL DEFAULT '[]',
		client_id {{ref}} NOT NULL REFERENCES profiles(id),
		status TEXT NOT NULL DEFAULT 'open',
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id {{id}},
		project_id {{ref}} NOT NULL REFERENCES projects(id),
		user_id {{ref}} NOT NULL REFERENCES profiles(id),
		cover_letter TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_project ON applications(project_id)`,
	`CREATE TABLE IF NOT EXISTS freelancer_applications (
		id {{id}},
		user_id {{ref}} NOT NULL REFERENCES profiles(id),
		full_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		university TEXT NOT NULL DEFAULT '',
		major TEXT NOT NULL DEFAULT '',
		skills {{json}} NOT NULL DEFAULT '[]',
		experience TEXT NOT NULL DEFAULT '',
		portfolio_url TEXT NOT NULL DEFAULT '',
		github_url TEXT NOT NULL DEFAULT '',
		resume_url TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id {{id}},
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		created_at {{ts}} NOT NULL
	)`,
}

func schemaStatements(d Dialect) []string {
	r := strings.NewReplacer(
		"{{id}}", "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY",
		"{{ref}}", "BIGINT",
		"{{json}}", "JSONB",
		"{{float}}", "DOUBLE PRECISION",
		"{{ts}}", "TIMESTAMPTZ",
	)
	if d == DialectSQLite {
		r = strings.NewReplacer(
			"{{id}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
			"{{ref}}", "INTEGER",
			"{{json}}", "TEXT",
			"{{float}}", "REAL",
			"{{ts}}", "TIMESTAMP",
		)
	}

	out := make([]string, 0, len(schemaTemplate))
	for _, stmt := range schemaTemplate {
		out = append(out, r.Replace(stmt))
	}
	return out
}
