// Package database provides SQLite connectivity for container snapshots.
//
// This package manages:
//   - Database connection with WAL mode for file-backed databases
//   - Schema migrations loaded from an fs.FS (see the migrations package)
//   - Lifecycle and health checks
//
// Security Considerations:
//   - All queries use parameterised statements
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path, WALMode: true})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migration files are named YYYYMMDD_HHMMSS_description.{up,down}.sql and are
// applied in version order, one transaction each.
package database
