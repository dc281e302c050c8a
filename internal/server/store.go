package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/lp/internal/model"
)

// deleteGrace is how long a soft-deleted link stays visible (marked with
// its deletion timestamp) before list requests purge it. Clients render
// such links as "deleting" rather than treating them as absent.
const deleteGrace = 2 * time.Second

// Store persists links and groups in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database at path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys and set pragmas for performance
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS links (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			url TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			logo TEXT NOT NULL DEFAULT '',
			priority INTEGER,
			created_at TEXT NOT NULL,
			deleted_at TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_links_priority ON links(priority);

		CREATE TABLE IF NOT EXISTS groups (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			priority INTEGER NOT NULL DEFAULT 0,
			links TEXT NOT NULL DEFAULT '[]'
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ListLinks returns one page of links, optionally restricted to a set of
// IDs, plus the total count for that restriction. Soft-deleted links
// past their grace period are purged first; younger ones are returned
// with their deletion timestamp intact.
func (s *Store) ListLinks(ids []string, page, size int) ([]model.Link, int, error) {
	if err := s.purgeExpired(); err != nil {
		return nil, 0, err
	}

	where := ""
	var args []any
	if len(ids) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
		where = "WHERE id IN (" + placeholders + ")"
		for _, id := range ids {
			args = append(args, id)
		}
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM links "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	query := fmt.Sprintf(`
		SELECT id, name, url, description, logo, priority, created_at, deleted_at
		FROM links %s
		ORDER BY created_at, id
		LIMIT %d OFFSET %d
	`, where, size, (page-1)*size)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	links := []model.Link{}
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, 0, err
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return links, total, nil
}

// GetLink returns the link with the given ID, or nil if absent.
func (s *Store) GetLink(id string) (*model.Link, error) {
	row := s.db.QueryRow(`
		SELECT id, name, url, description, logo, priority, created_at, deleted_at
		FROM links WHERE id = ?
	`, id)

	link, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// CreateLink inserts a new link.
func (s *Store) CreateLink(link model.Link) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO links (id, name, url, description, logo, priority, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, link.ID, link.Name, link.URL, link.Description, link.Logo,
		priorityValue(link.Priority), link.CreatedAt.Format(time.RFC3339), timeValue(link.DeletedAt))
	return err
}

// ReplaceLink overwrites the full link row. Returns sql.ErrNoRows if the
// link does not exist.
func (s *Store) ReplaceLink(link model.Link) error {
	res, err := s.db.Exec(`
		UPDATE links
		SET name = ?, url = ?, description = ?, logo = ?, priority = ?, created_at = ?, deleted_at = ?
		WHERE id = ?
	`, link.Name, link.URL, link.Description, link.Logo,
		priorityValue(link.Priority), link.CreatedAt.Format(time.RFC3339), timeValue(link.DeletedAt), link.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteLink marks the link as deleted. The row stays visible with its
// deletion timestamp until the grace period expires.
func (s *Store) DeleteLink(id string) error {
	res, err := s.db.Exec(
		"UPDATE links SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// purgeExpired removes soft-deleted links past the grace period.
func (s *Store) purgeExpired() error {
	cutoff := time.Now().Add(-deleteGrace).Format(time.RFC3339)
	_, err := s.db.Exec("DELETE FROM links WHERE deleted_at IS NOT NULL AND deleted_at < ?", cutoff)
	return err
}

// ListGroups returns all groups ordered ascending by priority.
func (s *Store) ListGroups() ([]model.LinkGroup, error) {
	rows, err := s.db.Query("SELECT id, name, priority, links FROM groups ORDER BY priority, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []model.LinkGroup{}
	for rows.Next() {
		var g model.LinkGroup
		var linksJSON string
		if err := rows.Scan(&g.ID, &g.Name, &g.Priority, &linksJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(linksJSON), &g.Links); err != nil {
			g.Links = []string{}
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// CreateGroup inserts a new group.
func (s *Store) CreateGroup(g model.LinkGroup) error {
	linksJSON, _ := json.Marshal(g.Links)
	if g.Links == nil {
		linksJSON = []byte("[]")
	}
	_, err := s.db.Exec(
		"INSERT INTO groups (id, name, priority, links) VALUES (?, ?, ?, ?)",
		g.ID, g.Name, g.Priority, string(linksJSON))
	return err
}

// ReplaceGroup overwrites the full group row, membership included.
func (s *Store) ReplaceGroup(g model.LinkGroup) error {
	linksJSON, _ := json.Marshal(g.Links)
	if g.Links == nil {
		linksJSON = []byte("[]")
	}
	res, err := s.db.Exec(
		"UPDATE groups SET name = ?, priority = ?, links = ? WHERE id = ?",
		g.Name, g.Priority, string(linksJSON), g.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanLink reads one link row.
func scanLink(row scanner) (model.Link, error) {
	var l model.Link
	var priority sql.NullInt64
	var createdAt string
	var deletedAt sql.NullString

	if err := row.Scan(&l.ID, &l.Name, &l.URL, &l.Description, &l.Logo,
		&priority, &createdAt, &deletedAt); err != nil {
		return model.Link{}, err
	}

	if priority.Valid {
		p := int(priority.Int64)
		l.Priority = &p
	}
	l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if deletedAt.Valid {
		if t, err := time.Parse(time.RFC3339, deletedAt.String); err == nil {
			l.DeletedAt = &t
		}
	}
	return l, nil
}

// priorityValue converts an optional priority for storage.
func priorityValue(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// timeValue converts an optional timestamp for storage.
func timeValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
