package migration

import (
	"errors"
	"fmt"
)

var (
	// ErrMigrationFailed wraps any failure while applying a migration.
	ErrMigrationFailed = errors.New("migration: execution failed")
	// ErrInvalidMigrationFile reports a badly named or empty migration file.
	ErrInvalidMigrationFile = errors.New("migration: invalid migration file")
	// ErrVersionConflict reports a gap or unknown version between applied and embedded migrations.
	ErrVersionConflict = errors.New("migration: version conflict")
	// ErrDuplicateVersion reports two embedded files sharing a version prefix.
	ErrDuplicateVersion = errors.New("migration: duplicate version")
	// ErrChecksumMismatch reports an applied migration whose file changed afterwards.
	ErrChecksumMismatch = errors.New("migration: checksum mismatch")
)

// MigrationError attaches the migration file and step to a scan or apply failure.
type MigrationError struct {
	Version   string
	FilePath  string
	Operation string
	Err       error
}

func (e *MigrationError) Error() string {
	name := e.FilePath
	if e.Version != "" {
		name = e.Version + " (" + e.FilePath + ")"
	}
	return fmt.Sprintf("migration %s: %s: %v", name, e.Operation, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }

// NewMigrationError builds a MigrationError.
func NewMigrationError(version, filePath, operation string, err error) *MigrationError {
	return &MigrationError{Version: version, FilePath: filePath, Operation: operation, Err: err}
}

// DatabaseError reports a failing statement against the migration tables or schema.
type DatabaseError struct {
	Version   string
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf("migration database: %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("migration database %s: %s: %v", e.Version, e.Operation, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// NewDatabaseError builds a DatabaseError.
func NewDatabaseError(version, operation string, err error) *DatabaseError {
	return &DatabaseError{Version: version, Operation: operation, Err: err}
}
