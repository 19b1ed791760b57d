// Package database provides the SQLite connection behind the door's audit
// log.
//
// The database is optional: the door works from its credential records
// alone. When enabled it holds the access_events table and the
// schema_migrations bookkeeping table.
//
//   - WAL mode and a busy timeout keep the single writer from blocking
//   - The file is created with 0600 permissions
//   - Migrations are embedded SQL files applied in version order, each in
//     its own transaction
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
// Migration files are named YYYYMMDD_HHMMSS_description.up.sql with a
// matching .down.sql.
package database
