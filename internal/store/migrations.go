package store

import (
	"fmt"
	"strings"
)

// Migrations are dialect-specific because SQLite and PostgreSQL disagree on
// auto-increment keys and timestamp types. Each migration must be idempotent;
// "duplicate column" errors from ALTER TABLE are treated as a no-op so the
// list can be re-run on every startup.

var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS my_info (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		about_me TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS skills (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT UNIQUE NOT NULL,
		industry TEXT NOT NULL DEFAULT '',
		short_description TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		end_date DATETIME NOT NULL,
		key_features TEXT NOT NULL DEFAULT '[]',
		link TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS social_media (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		platform TEXT UNIQUE NOT NULL,
		link TEXT NOT NULL DEFAULT ''
	)`,

	// v2: flag distinguishing source-code projects from live deployments.
	`ALTER TABLE projects ADD COLUMN is_source_code INTEGER NOT NULL DEFAULT 0`,
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS my_info (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		about_me TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS skills (
		id BIGSERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id BIGSERIAL PRIMARY KEY,
		title TEXT UNIQUE NOT NULL,
		industry TEXT NOT NULL DEFAULT '',
		short_description TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		end_date TIMESTAMPTZ NOT NULL,
		key_features TEXT NOT NULL DEFAULT '[]',
		link TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS social_media (
		id BIGSERIAL PRIMARY KEY,
		platform TEXT UNIQUE NOT NULL,
		link TEXT NOT NULL DEFAULT ''
	)`,

	`ALTER TABLE projects ADD COLUMN IF NOT EXISTS is_source_code BOOLEAN NOT NULL DEFAULT FALSE`,
}

func (s *Store) migrate() error {
	migrations := sqliteMigrations
	if s.driver == DriverPostgres {
		migrations = postgresMigrations
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			// SQLite ALTER TABLE ADD COLUMN fails if the column already
			// exists; treat "duplicate column" as a no-op so migrations
			// stay idempotent.
			if strings.Contains(err.Error(), "duplicate column") {
				continue
			}
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
