package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	nameSanitizeRe = regexp.MustCompile(`[^a-z0-9_]+`)
	createTableRe  = regexp.MustCompile(`^create_([a-z0-9_]+?)(?:_table)?$`)
	addColumnRe    = regexp.MustCompile(`^add_([a-z0-9_]+)_to_([a-z0-9_]+)$`)
)

// CreateSQLMigration creates a goose SQL migration file:
//
//	<dir>/<YYYYMMDDHHMMSS>_<name>.sql
//
// Names shaped like create_<table>[_table] or add_<column>_to_<table> get a
// table or column skeleton; anything else gets empty sections.
func CreateSQLMigration(dir string, name string) (string, error) {
	return createSQLMigration(dir, name, time.Now().UTC())
}

func createSQLMigration(dir string, name string, now time.Time) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}
	safe := sanitizeMigrationName(name)
	if safe == "" {
		return "", fmt.Errorf("migration name %q has no usable characters", name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	fullpath := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", now.Format("20060102150405"), safe))
	if _, err := os.Stat(fullpath); err == nil {
		return "", fmt.Errorf("migration already exists: %s", fullpath)
	}

	if err := os.WriteFile(fullpath, []byte(migrationBody(safe)), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", fullpath, err)
	}
	return fullpath, nil
}

func sanitizeMigrationName(name string) string {
	safe := strings.ToLower(strings.TrimSpace(name))
	safe = nameSanitizeRe.ReplaceAllString(safe, "_")
	return strings.Trim(safe, "_")
}

// migrationBody renders the skeleton for a sanitized name. Generated SQL
// sticks to types both postgres and sqlite accept.
func migrationBody(name string) string {
	if m := addColumnRe.FindStringSubmatch(name); m != nil {
		column, table := m[1], m[2]
		return fmt.Sprintf(`-- +goose Up
ALTER TABLE %[2]s ADD COLUMN %[1]s TEXT;

-- +goose Down
ALTER TABLE %[2]s DROP COLUMN %[1]s;
`, column, table)
	}
	if m := createTableRe.FindStringSubmatch(name); m != nil {
		table := m[1]
		return fmt.Sprintf(`-- +goose Up
CREATE TABLE IF NOT EXISTS %[1]s (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- +goose Down
DROP TABLE IF EXISTS %[1]s;
`, table)
	}
	return fmt.Sprintf(`-- +goose Up
-- %[1]s: statements must run on both postgres and sqlite

-- +goose Down
-- revert %[1]s
`, name)
}
