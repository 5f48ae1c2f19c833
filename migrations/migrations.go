// Package migrations contient le schéma de la base et l'applique dans l'ordre des noms de fichiers.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/ekicare/ekicare-api/pkg/psqlbuilder"
)

const versionsTable = "schema_migrations"

//go:embed *.sql
var files embed.FS

var (
	ErrReadMigrations = errors.New("migrations: read embedded files")
	ErrApply          = errors.New("migrations: apply")
)

// Logger interface du runner
type Logger interface {
	Info(format string, v ...interface{})
}

// Migration un fichier SQL, Version est le nom du fichier sans extension
type Migration struct {
	Version string
	SQL     string
}

// Load retourne les migrations embarquées triées par version
func Load() ([]Migration, error) {
	return load(files)
}

func load(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMigrations, err)
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadMigrations, name, err)
		}
		migrations = append(migrations, Migration{
			Version: strings.TrimSuffix(name, ".sql"),
			SQL:     string(content),
		})
	}
	return migrations, nil
}

// Apply exécute chaque migration absente de schema_migrations, chacune dans sa
// propre transaction. Un second appel ne fait rien. Retourne les versions appliquées.
func Apply(ctx context.Context, db *sql.DB, migrations []Migration, log Logger) ([]string, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+versionsTable+` (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrApply, versionsTable, err)
	}

	done, err := appliedVersions(ctx, db)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, m := range migrations {
		if done[m.Version] {
			continue
		}
		if err := applyOne(ctx, db, m); err != nil {
			return applied, err
		}
		log.Info("Applied migration %s", m.Version)
		applied = append(applied, m.Version)
	}

	return applied, nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	query, args, err := psqlbuilder.Select("version").From(versionsTable).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: build select: %v", ErrApply, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: read versions: %v", ErrApply, err)
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("%w: scan version: %v", ErrApply, err)
		}
		done[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read versions: %v", ErrApply, err)
	}
	return done, nil
}

func applyOne(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: begin: %v", ErrApply, m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrApply, m.Version, err)
	}

	query, args, err := psqlbuilder.Insert(versionsTable).Columns("version").Values(m.Version).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s: build insert: %v", ErrApply, m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s: record version: %v", ErrApply, m.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %s: commit: %v", ErrApply, m.Version, err)
	}
	return nil
}
