package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// RunMigrations executes the SQL files under migrationsPath/<dialect subdir> that
// have not run yet, in filename order
func (db *DB) RunMigrations(migrationsPath string) ([]string, error) {
	if _, err := db.Exec(db.Dialect.CreateMigrationsTableQuery()); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	dir := filepath.Join(migrationsPath, db.Dialect.MigrationsSubdir())
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to read migration files: %w", err)
	}

	// Sort files to ensure they run in order
	sort.Strings(files)

	var applied []string
	for _, file := range files {
		filename := filepath.Base(file)

		hasRun, err := db.hasMigrationRun(filename)
		if err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if hasRun {
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return applied, fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}

		if _, err := db.Exec("INSERT INTO migrations (filename) VALUES (?)", filename); err != nil {
			return applied, fmt.Errorf("failed to record migration %s: %w", filename, err)
		}

		applied = append(applied, filename)
	}

	return applied, nil
}

// hasMigrationRun checks if a migration has already been executed
func (db *DB) hasMigrationRun(filename string) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE filename = ?", filename).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
