// Package migration applies versioned SQL schema migrations to SQLite
// databases.
//
// Migrations are read from an fs.FS (typically an embedded directory) and
// follow the naming convention {version}_{description}.sql, for example
// "001_initial_schema.sql". Applied versions are tracked in the
// schema_migrations table so that each migration runs exactly once, inside
// its own transaction.
//
// Example usage:
//
//	manager := NewMigrationManager(NewFileScanner(migrations), NewSQLiteExecutor(db), ".", logger)
//	if err := manager.RunMigrations(ctx); err != nil {
//		return fmt.Errorf("migrate: %w", err)
//	}
package migration
