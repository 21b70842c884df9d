// Package store persists parsed pkg_summary(5) records in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ralt/pkgsum/internal/models"
)

// Store is a SQLite-backed sink for Summary records.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS packages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	automatic INTEGER NOT NULL DEFAULT 0,
	build_date TEXT NOT NULL,
	categories TEXT NOT NULL,
	comment TEXT NOT NULL,
	conflicts TEXT,
	depends TEXT,
	description TEXT NOT NULL,
	file_cksum TEXT,
	file_name TEXT,
	file_size INTEGER,
	homepage TEXT,
	license TEXT,
	machine_arch TEXT NOT NULL,
	opsys TEXT NOT NULL,
	os_version TEXT NOT NULL,
	pkg_options TEXT,
	pkgbase TEXT NOT NULL,
	pkgname TEXT NOT NULL,
	pkgpath TEXT NOT NULL,
	pkgtools_version TEXT NOT NULL,
	pkgversion TEXT NOT NULL,
	prev_pkgpath TEXT,
	provides TEXT,
	requires TEXT,
	size_pkg INTEGER NOT NULL,
	supersedes TEXT
);
CREATE INDEX IF NOT EXISTS packages_pkgname ON packages (pkgname);
`

const insertSQL = `
INSERT INTO packages (
	automatic, build_date, categories, comment, conflicts, depends,
	description, file_cksum, file_name, file_size, homepage, license,
	machine_arch, opsys, os_version, pkg_options, pkgbase, pkgname,
	pkgpath, pkgtools_version, pkgversion, prev_pkgpath, provides,
	requires, size_pkg, supersedes
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// New opens (and if necessary creates) a package database at path.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Insert writes the given records in a single transaction and returns the
// number of rows inserted.
func (s *Store) Insert(ctx context.Context, sums []*models.Summary) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, sum := range sums {
		_, err := stmt.ExecContext(ctx,
			sum.Automatic.Int64,
			sum.BuildDate,
			joinList(sum.Categories),
			sum.Comment,
			joinList(sum.Conflicts),
			joinList(sum.Depends),
			joinList(sum.Description),
			sum.FileCksum,
			sum.FileName,
			sum.FileSize,
			sum.Homepage,
			sum.License,
			sum.MachineArch,
			sum.Opsys,
			sum.OsVersion,
			sum.PkgOptions,
			sum.Pkgbase,
			sum.Pkgname,
			sum.Pkgpath,
			sum.PkgtoolsVersion,
			sum.Pkgversion,
			sum.PrevPkgpath,
			joinList(sum.Provides),
			joinList(sum.Requires),
			sum.SizePkg,
			joinList(sum.Supersedes),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", sum.Pkgname, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(sums), nil
}

// Count returns the number of stored packages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM packages")
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting packages: %w", err)
	}
	return n, nil
}

// Get returns the most recently inserted record for pkgname, or
// sql.ErrNoRows if the package is not stored.
func (s *Store) Get(ctx context.Context, pkgname string) (*models.Summary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT automatic, build_date, categories, comment, conflicts, depends,
			description, file_cksum, file_name, file_size, homepage, license,
			machine_arch, opsys, os_version, pkg_options, pkgbase, pkgname,
			pkgpath, pkgtools_version, pkgversion, prev_pkgpath, provides,
			requires, size_pkg, supersedes
		FROM packages WHERE pkgname = ? ORDER BY id DESC LIMIT 1`, pkgname)

	var sum models.Summary
	var categories, conflicts, depends, description string
	var provides, requires, supersedes string
	var automatic int64
	err := row.Scan(
		&automatic,
		&sum.BuildDate,
		&categories,
		&sum.Comment,
		&conflicts,
		&depends,
		&description,
		&sum.FileCksum,
		&sum.FileName,
		&sum.FileSize,
		&sum.Homepage,
		&sum.License,
		&sum.MachineArch,
		&sum.Opsys,
		&sum.OsVersion,
		&sum.PkgOptions,
		&sum.Pkgbase,
		&sum.Pkgname,
		&sum.Pkgpath,
		&sum.PkgtoolsVersion,
		&sum.Pkgversion,
		&sum.PrevPkgpath,
		&provides,
		&requires,
		&sum.SizePkg,
		&supersedes,
	)
	if err != nil {
		return nil, err
	}

	if automatic != 0 {
		sum.SetAutomatic()
	}
	sum.Categories = splitList(categories)
	sum.Conflicts = splitList(conflicts)
	sum.Depends = splitList(depends)
	sum.Description = splitList(description)
	sum.Provides = splitList(provides)
	sum.Requires = splitList(requires)
	sum.Supersedes = splitList(supersedes)
	return &sum, nil
}

// Repeated fields are stored newline-joined. Values cannot contain newlines
// since each came from a single KEY=VALUE line.
func joinList(list []string) string {
	return strings.Join(list, "\n")
}

func splitList(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, "\n")
}
