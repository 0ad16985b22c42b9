package testsupport

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// NewSQLite creates a database file holding table(id INTEGER PRIMARY KEY,
// name TEXT) seeded with values; a nil entry inserts NULL. It returns the
// file path and a handle for assertions that is closed on cleanup.
func NewSQLite(t testing.TB, table string, values ...*string) (string, *sql.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(fmt.Sprintf(`CREATE TABLE %q (id INTEGER PRIMARY KEY, name TEXT)`, table)); err != nil {
		t.Fatalf("create table: %v", err)
	}
	for _, value := range values {
		if _, err := db.Exec(fmt.Sprintf(`INSERT INTO %q (name) VALUES (?)`, table), value); err != nil {
			t.Fatalf("insert row: %v", err)
		}
	}
	return path, db
}

// Str returns a pointer to s for NewSQLite.
func Str(s string) *string {
	return &s
}

// Column returns name values ordered by id; NULL reads as "<nil>".
func Column(t testing.TB, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query(fmt.Sprintf(`SELECT name FROM %q ORDER BY id`, table))
	if err != nil {
		t.Fatalf("query column: %v", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if !value.Valid {
			out = append(out, "<nil>")
			continue
		}
		out = append(out, value.String)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate: %v", err)
	}
	return out
}
