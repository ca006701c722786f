// Package sqlite provides a SQLite-backed implementation of the storage
// contracts using Go's standard database/sql package.
//
// WHY AN IN-MEMORY SQLite?
// ────────────────────────
// The registry must not outlive the academy instance, so the database is
// opened with mode=memory: no file is ever written and everything is
// dropped when the last connection closes. What SQLite adds over plain
// maps is atomic upserts done by the engine itself, and the familiar
// table layout when debugging with the sqlite shell.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aanand-mishra/academy-registry/internal/config"
	"github.com/aanand-mishra/academy-registry/internal/storage"
	"github.com/aanand-mishra/academy-registry/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

const (
	teacherRatingsTable = "teacher_ratings"
	studentRatingsTable = "student_ratings"
)

// SQLite is the concrete storage.UserStore. The two rating tables are
// reached through TeacherRatings and StudentRatings.
type SQLite struct {
	Db *sql.DB
}

// New opens a private in-memory database named after cfg.Storage.Name
// (a random name when empty) and creates the schema.
func New(cfg *config.Config) (*SQLite, error) {
	name := cfg.Storage.Name
	if name == "" {
		name = uuid.NewString()
	}

	// cache=shared lets every pooled connection see the same in-memory
	// database; a single open connection serialises writers so the engine
	// never reports "table is locked".
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Schema:
	//   users            — registry, role stored as its integer value
	//   teacher_ratings  — teacher counter space
	//   student_ratings  — student counter space, physically separate
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id   TEXT    PRIMARY KEY,
			name TEXT    NOT NULL,
			role INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS teacher_ratings (
			id    TEXT    PRIMARY KEY,
			count INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS student_ratings (
			id    TEXT    PRIMARY KEY,
			count INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close drops the in-memory database.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// Put inserts the record or replaces every column of an existing one.
func (s *SQLite) Put(id string, user types.User) error {
	stmt, err := s.Db.Prepare(`
		INSERT INTO users (id, name, role) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, role = excluded.role
	`)
	if err != nil {
		return fmt.Errorf("Put: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(id, user.Name, int(user.Role)); err != nil {
		return fmt.Errorf("Put: exec: %w", err)
	}
	return nil
}

func (s *SQLite) Get(id string) (types.User, error) {
	stmt, err := s.Db.Prepare("SELECT name, role FROM users WHERE id = ? LIMIT 1")
	if err != nil {
		return types.User{}, fmt.Errorf("Get: prepare: %w", err)
	}
	defer stmt.Close()

	var (
		user types.User
		role int
	)
	if err := stmt.QueryRow(id).Scan(&user.Name, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, fmt.Errorf("Get %q: %w", id, storage.ErrNotFound)
		}
		return types.User{}, fmt.Errorf("Get: scan: %w", err)
	}
	user.Role = types.Role(role)

	return user, nil
}

// Rename touches only the name column; the role is left as stored.
func (s *SQLite) Rename(id string, name string) error {
	stmt, err := s.Db.Prepare("UPDATE users SET name = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("Rename: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(name, id)
	if err != nil {
		return fmt.Errorf("Rename: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Rename: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("Rename %q: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLite) List() (map[string]types.User, error) {
	stmt, err := s.Db.Prepare("SELECT id, name, role FROM users")
	if err != nil {
		return nil, fmt.Errorf("List: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("List: query: %w", err)
	}
	defer rows.Close()

	users := make(map[string]types.User)
	for rows.Next() {
		var (
			id   string
			user types.User
			role int
		)
		if err := rows.Scan(&id, &user.Name, &role); err != nil {
			return nil, fmt.Errorf("List: scan row: %w", err)
		}
		user.Role = types.Role(role)
		users[id] = user
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows iteration: %w", err)
	}

	return users, nil
}

// TeacherRatings returns the teacher counter space.
func (s *SQLite) TeacherRatings() *Counters {
	return &Counters{db: s.Db, table: teacherRatingsTable}
}

// StudentRatings returns the student counter space.
func (s *SQLite) StudentRatings() *Counters {
	return &Counters{db: s.Db, table: studentRatingsTable}
}

// Counters is a storage.CounterStore over one ratings table. The table
// name is one of the package constants, never caller input.
type Counters struct {
	db    *sql.DB
	table string
}

// Increment is a single upsert so the engine performs the read-modify-write.
func (c *Counters) Increment(id string) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, count) VALUES (?, 1)
		ON CONFLICT(id) DO UPDATE SET count = count + 1
		RETURNING count
	`, c.table)

	var count int64
	if err := c.db.QueryRow(query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("Increment %s: %w", c.table, err)
	}
	return uint64(count), nil
}

func (c *Counters) Get(id string) (uint64, error) {
	query := fmt.Sprintf("SELECT count FROM %s WHERE id = ? LIMIT 1", c.table)

	var count int64
	err := c.db.QueryRow(query, id).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("Get %s: %w", c.table, err)
	}
	return uint64(count), nil
}

var (
	_ storage.UserStore    = (*SQLite)(nil)
	_ storage.CounterStore = (*Counters)(nil)
)
