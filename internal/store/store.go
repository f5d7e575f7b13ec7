package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/xXRex45Xx/MyPortfolio/internal/model"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store persists all portfolio state: the admin identity, personal info,
// skills, projects, and social media links. It runs against SQLite (the
// default, file-backed) or PostgreSQL via the pgx stdlib driver.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the database, applies migrations, and ensures the
// singleton my_info row exists. For SQLite, dsn is a file path; pass an
// empty string for an in-memory database.
func Open(driver, dsn string) (*Store, error) {
	var db *sqlx.DB
	var err error

	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = ":memory:?_journal_mode=WAL"
		} else {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
			dsn += "?_journal_mode=WAL&_busy_timeout=5000"
		}
		db, err = sqlx.Connect("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	case DriverPostgres:
		db, err = sqlx.Connect("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	if err := s.ensureMyInfoRow(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed my_info: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// Both modernc SQLite and pgx surface these only as message text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

// ---------------------------------------------------------------------------
// Admins
// ---------------------------------------------------------------------------

// CreateAdmin inserts a new admin account. The ID field is populated after a
// successful insert.
func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	q := s.db.Rebind(`INSERT INTO admins (username, password_hash) VALUES (?, ?) RETURNING id`)
	if err := s.db.GetContext(ctx, &admin.ID, q, admin.Username, admin.PasswordHash); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// GetAdminByUsername returns the admin with the given username (exact match).
func (s *Store) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	q := s.db.Rebind("SELECT * FROM admins WHERE username = ?")
	if err := s.db.GetContext(ctx, &admin, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	return &admin, nil
}

// UpdateAdminPassword replaces the stored password hash in a single update.
func (s *Store) UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error {
	q := s.db.Rebind("UPDATE admins SET password_hash = ? WHERE id = ?")
	result, err := s.db.ExecContext(ctx, q, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update admin password rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// HasAnyAdmin reports whether at least one admin account exists. Used at
// startup to decide whether to seed the default account.
func (s *Store) HasAnyAdmin(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM admins"); err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return count > 0, nil
}

// ---------------------------------------------------------------------------
// MyInfo (singleton row, id = 1)
// ---------------------------------------------------------------------------

const myInfoID = 1

// ensureMyInfoRow inserts the empty singleton row on first run so public
// reads never miss.
func (s *Store) ensureMyInfoRow(ctx context.Context) error {
	var count int
	q := s.db.Rebind("SELECT COUNT(*) FROM my_info WHERE id = ?")
	if err := s.db.GetContext(ctx, &count, q, myInfoID); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	q = s.db.Rebind("INSERT INTO my_info (id) VALUES (?)")
	_, err := s.db.ExecContext(ctx, q, myInfoID)
	return err
}

// GetMyInfo returns the personal info record.
func (s *Store) GetMyInfo(ctx context.Context) (*model.MyInfo, error) {
	var info model.MyInfo
	q := s.db.Rebind("SELECT * FROM my_info WHERE id = ?")
	if err := s.db.GetContext(ctx, &info, q, myInfoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get my_info: %w", err)
	}
	return &info, nil
}

// UpsertMyInfo overwrites the singleton record, creating it if it has never
// been written.
func (s *Store) UpsertMyInfo(ctx context.Context, info *model.MyInfo) error {
	info.ID = myInfoID
	q := s.db.Rebind(`UPDATE my_info
		SET name = ?, title = ?, email = ?, phone = ?, about_me = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, q,
		info.Name, info.Title, info.Email, info.Phone, info.AboutMe, myInfoID)
	if err != nil {
		return fmt.Errorf("update my_info: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update my_info rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	q = s.db.Rebind(`INSERT INTO my_info (id, name, title, email, phone, about_me)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, q,
		myInfoID, info.Name, info.Title, info.Email, info.Phone, info.AboutMe); err != nil {
		return fmt.Errorf("insert my_info: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Skills
// ---------------------------------------------------------------------------

// ListSkills returns all skills ordered by name.
func (s *Store) ListSkills(ctx context.Context) ([]model.Skill, error) {
	skills := []model.Skill{}
	if err := s.db.SelectContext(ctx, &skills, "SELECT * FROM skills ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

// CreateSkill inserts a new skill. Duplicate names yield ErrConflict.
func (s *Store) CreateSkill(ctx context.Context, skill *model.Skill) error {
	q := s.db.Rebind("INSERT INTO skills (name) VALUES (?) RETURNING id")
	if err := s.db.GetContext(ctx, &skill.ID, q, skill.Name); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert skill: %w", err)
	}
	return nil
}

// UpdateSkill renames a skill. Duplicate names yield ErrConflict.
func (s *Store) UpdateSkill(ctx context.Context, id int64, name string) error {
	q := s.db.Rebind("UPDATE skills SET name = ? WHERE id = ?")
	result, err := s.db.ExecContext(ctx, q, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("update skill: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update skill rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSkill removes a skill by ID.
func (s *Store) DeleteSkill(ctx context.Context, id int64) error {
	q := s.db.Rebind("DELETE FROM skills WHERE id = ?")
	result, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete skill rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

// projectRow maps 1:1 to the projects table. model.Project carries
// KeyFeatures as a string slice, so it goes through JSON here.
type projectRow struct {
	ID               int64      `db:"id"`
	Title            string     `db:"title"`
	Industry         string     `db:"industry"`
	ShortDescription string     `db:"short_description"`
	Description      string     `db:"description"`
	EndDate          time.Time `db:"end_date"`
	KeyFeatures      string    `db:"key_features"`
	Link             string    `db:"link"`
	ImageURL         string    `db:"image_url"`
	IsSourceCode     bool      `db:"is_source_code"`
}

func projectRowFromModel(p *model.Project) (projectRow, error) {
	features, err := json.Marshal(p.KeyFeatures)
	if err != nil {
		return projectRow{}, fmt.Errorf("marshal key features: %w", err)
	}
	return projectRow{
		ID:               p.ID,
		Title:            p.Title,
		Industry:         p.Industry,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		EndDate:          p.EndDate.UTC(),
		KeyFeatures:      string(features),
		Link:             p.Link,
		ImageURL:         p.ImageURL,
		IsSourceCode:     p.IsSourceCode,
	}, nil
}

func (r projectRow) toModel() (model.Project, error) {
	var features []string
	if err := json.Unmarshal([]byte(r.KeyFeatures), &features); err != nil {
		return model.Project{}, fmt.Errorf("unmarshal key features: %w", err)
	}
	return model.Project{
		ID:               r.ID,
		Title:            r.Title,
		Industry:         r.Industry,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		EndDate:          r.EndDate,
		KeyFeatures:      features,
		Link:             r.Link,
		ImageURL:         r.ImageURL,
		IsSourceCode:     r.IsSourceCode,
	}, nil
}

// ListProjects returns the summary view of all projects, newest first.
func (s *Store) ListProjects(ctx context.Context) ([]model.ProjectSummary, error) {
	projects := []model.ProjectSummary{}
	const q = `SELECT id, title, short_description, image_url
		FROM projects ORDER BY end_date DESC, id DESC`
	if err := s.db.SelectContext(ctx, &projects, q); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns the full project record by ID.
func (s *Store) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var row projectRow
	q := s.db.Rebind("SELECT * FROM projects WHERE id = ?")
	if err := s.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	p, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject inserts a new project. Duplicate titles yield ErrConflict.
// The ID field is populated after a successful insert.
func (s *Store) CreateProject(ctx context.Context, p *model.Project) error {
	row, err := projectRowFromModel(p)
	if err != nil {
		return err
	}
	q := s.db.Rebind(`INSERT INTO projects
		(title, industry, short_description, description, end_date, key_features, link, image_url, is_source_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := s.db.GetContext(ctx, &p.ID, q,
		row.Title, row.Industry, row.ShortDescription, row.Description,
		row.EndDate, row.KeyFeatures, row.Link, row.ImageURL, row.IsSourceCode); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// UpdateProject overwrites an existing project record.
func (s *Store) UpdateProject(ctx context.Context, p *model.Project) error {
	row, err := projectRowFromModel(p)
	if err != nil {
		return err
	}
	q := s.db.Rebind(`UPDATE projects SET
		title = ?, industry = ?, short_description = ?, description = ?,
		end_date = ?, key_features = ?, link = ?, image_url = ?, is_source_code = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, q,
		row.Title, row.Industry, row.ShortDescription, row.Description,
		row.EndDate, row.KeyFeatures, row.Link, row.ImageURL, row.IsSourceCode, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("update project: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProject removes a project by ID.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	q := s.db.Rebind("DELETE FROM projects WHERE id = ?")
	result, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Social media links
// ---------------------------------------------------------------------------

// ListSocialMedia returns all social media links ordered by platform.
func (s *Store) ListSocialMedia(ctx context.Context) ([]model.SocialMedia, error) {
	links := []model.SocialMedia{}
	if err := s.db.SelectContext(ctx, &links, "SELECT * FROM social_media ORDER BY platform"); err != nil {
		return nil, fmt.Errorf("list social media: %w", err)
	}
	return links, nil
}

// CreateSocialMedia inserts a new link. Duplicate platforms yield ErrConflict.
func (s *Store) CreateSocialMedia(ctx context.Context, sm *model.SocialMedia) error {
	q := s.db.Rebind("INSERT INTO social_media (platform, link) VALUES (?, ?) RETURNING id")
	if err := s.db.GetContext(ctx, &sm.ID, q, sm.Platform, sm.Link); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert social media: %w", err)
	}
	return nil
}

// UpdateSocialMedia overwrites an existing link.
func (s *Store) UpdateSocialMedia(ctx context.Context, sm *model.SocialMedia) error {
	q := s.db.Rebind("UPDATE social_media SET platform = ?, link = ? WHERE id = ?")
	result, err := s.db.ExecContext(ctx, q, sm.Platform, sm.Link, sm.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("update social media: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update social media rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSocialMedia removes a link by ID.
func (s *Store) DeleteSocialMedia(ctx context.Context, id int64) error {
	q := s.db.Rebind("DELETE FROM social_media WHERE id = ?")
	result, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete social media: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete social media rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
