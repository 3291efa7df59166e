package dbal

import "fmt"

// LockMode selects the row lock a load acquires.
type LockMode int

const (
	// LockNone reads without a row lock.
	LockNone LockMode = iota
	// LockShared acquires a shared row lock; concurrent readers are allowed, writers wait.
	LockShared
	// LockForUpdate acquires an exclusive row lock held until the transaction ends.
	LockForUpdate
)

func (m LockMode) String() string {
	switch m {
	case LockNone:
		return "none"
	case LockShared:
		return "shared"
	case LockForUpdate:
		return "for_update"
	default:
		return fmt.Sprintf("LockMode(%d)", int(m))
	}
}

// Dialect captures the SQL differences between supported engines.
type Dialect struct {
	Name      string
	forUpdate string
	shared    string
	returning bool
}

// Supported dialects.
//
// SQLite has no row locks: a write transaction locks the database file, so lock
// clauses render empty and callers rely on BEGIN IMMEDIATE (_txlock=immediate).
var (
	SQLite   = Dialect{Name: "sqlite"}
	Postgres = Dialect{Name: "postgres", forUpdate: "FOR UPDATE", shared: "FOR SHARE", returning: true}
	MySQL    = Dialect{Name: "mysql", forUpdate: "FOR UPDATE", shared: "LOCK IN SHARE MODE"}
)

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driverName string) (Dialect, error) {
	switch driverName {
	case "sqlite3", "sqlite":
		return SQLite, nil
	case "pgx", "postgres":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported driver %q", driverName)
	}
}

// LockClause returns the clause appended to a SELECT for the given lock mode.
func (d Dialect) LockClause(mode LockMode) string {
	switch mode {
	case LockForUpdate:
		return d.forUpdate
	case LockShared:
		return d.shared
	default:
		return ""
	}
}

// SupportsReturning reports whether INSERT ... RETURNING is available.
func (d Dialect) SupportsReturning() bool { return d.returning }
