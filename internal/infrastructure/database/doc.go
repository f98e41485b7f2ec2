// Package database manages the local SQLite store backing the appliance
// state history.
//
// The workload is a single writer appending JSON snapshot rows as state
// changes arrive, with occasional reads of recent history per appliance.
// The pool is therefore pinned to one connection, and WAL mode keeps
// history reads from blocking the snapshot writer.
//
// Schema changes are additive-only: migrations add tables, columns and
// indexes around existing snapshot rows but never rewrite or drop them, so
// a rolled-back binary can still read the store. Migration files are
// embedded by the migrations package and registered via
// RegisterMigrations; Migrate applies pending versions at startup.
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
