package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"saathi/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// DirtyError means a previous migration failed half way and the schema
// needs manual repair.
type DirtyError struct {
	Version uint
}

func (e *DirtyError) Error() string {
	return fmt.Sprintf("database is dirty at version %d; fix the schema and reset schema_migrations", e.Version)
}

// Migrator applies golang-migrate style migration files. The files are read
// through the iofs source driver; statements are executed one by one because
// go-ora does not accept multi-statement scripts.
type Migrator struct {
	db  *sqlx.DB
	src source.Driver
}

// NewMigrator uses the migrations embedded in this package.
func NewMigrator(db *sqlx.DB) (*Migrator, error) {
	return NewMigratorFromFS(db, migrationFS, "migrations")
}

func NewMigratorFromFS(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migrations: %w", err)
	}
	return &Migrator{db: db, src: src}, nil
}

func (m *Migrator) Close() error {
	return m.src.Close()
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	var count int
	err := m.db.QueryRowxContext(ctx,
		"SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'").Scan(&count)
	if err != nil {
		return fmt.Errorf("could not check schema_migrations: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err = m.db.ExecContext(ctx,
		"CREATE TABLE schema_migrations (version NUMBER(19) NOT NULL, dirty NUMBER(1) NOT NULL)")
	if err != nil {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}
	return nil
}

// Version returns the applied version (0 when none) and the dirty flag.
func (m *Migrator) Version(ctx context.Context) (uint, bool, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, false, err
	}
	var version int64
	var dirty int
	err := m.db.QueryRowxContext(ctx, "SELECT version, dirty FROM schema_migrations").Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("could not read schema_migrations: %w", err)
	}
	return uint(version), dirty == 1, nil
}

func (m *Migrator) setVersion(ctx context.Context, version uint, dirty bool) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations"); err != nil {
		return err
	}
	if version > 0 || dirty {
		d := 0
		if dirty {
			d = 1
		}
		query := tx.Rebind("INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)")
		if _, err := tx.ExecContext(ctx, query, int64(version), d); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Up applies every pending migration and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	current, dirty, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}
	if dirty {
		return 0, &DirtyError{Version: current}
	}

	var next uint
	if current == 0 {
		next, err = m.src.First()
	} else {
		next, err = m.src.Next(current)
	}

	applied := 0
	for {
		if errors.Is(err, fs.ErrNotExist) {
			return applied, nil
		}
		if err != nil {
			return applied, fmt.Errorf("could not read migrations: %w", err)
		}
		if err := m.run(ctx, next, next, true); err != nil {
			return applied, err
		}
		applied++
		next, err = m.src.Next(next)
	}
}

// Down rolls back steps migrations, or all of them when steps <= 0.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	current, dirty, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}
	if dirty {
		return 0, &DirtyError{Version: current}
	}

	rolledBack := 0
	for current > 0 && (steps <= 0 || rolledBack < steps) {
		prev, err := m.src.Prev(current)
		if errors.Is(err, fs.ErrNotExist) {
			prev = 0
		} else if err != nil {
			return rolledBack, fmt.Errorf("could not read migrations: %w", err)
		}
		if err := m.run(ctx, current, prev, false); err != nil {
			return rolledBack, err
		}
		rolledBack++
		current = prev
	}
	return rolledBack, nil
}

// run executes the up or down script of version and records target as the
// new schema version.
func (m *Migrator) run(ctx context.Context, version, target uint, up bool) error {
	var (
		r     io.ReadCloser
		ident string
		err   error
	)
	if up {
		r, ident, err = m.src.ReadUp(version)
	} else {
		r, ident, err = m.src.ReadDown(version)
	}
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	body, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}

	if err := m.setVersion(ctx, version, true); err != nil {
		return fmt.Errorf("could not mark migration %d dirty: %w", version, err)
	}
	for _, stmt := range SplitStatements(string(body)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %d_%s: %w", version, ident, err)
		}
	}
	if err := m.setVersion(ctx, target, false); err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}

	direction := "down"
	if up {
		direction = "up"
	}
	logger.Get().Info("Executed migration",
		zap.Uint("version", version),
		zap.String("name", ident),
		zap.String("direction", direction))
	return nil
}

// SplitStatements splits a script on semicolons that end a line and drops
// full-line "--" comments. The trailing semicolon is removed since Oracle
// rejects it on single statements.
func SplitStatements(script string) []string {
	var (
		stmts   []string
		current strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			stmts = append(stmts, s)
		}
		current.Reset()
	}

	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			current.WriteString(strings.TrimSuffix(strings.TrimRight(line, " \t\r"), ";"))
			flush()
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}
	flush()
	return stmts
}
