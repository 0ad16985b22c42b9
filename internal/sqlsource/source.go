package sqlsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"textwrangler/internal/logging"
)

// ErrNotFound is returned by Open when the database file does not exist.
var ErrNotFound = errors.New("sqlite database not found")

// ErrInvalidIdentifier is returned for table or column names that are not
// plain identifiers.
var ErrInvalidIdentifier = errors.New("invalid sql identifier")

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Target names the table, text column and integer key column to process.
type Target struct {
	Table  string
	Column string
	Key    string
}

// Validate checks every identifier. An empty Key selects rowid.
func (t Target) Validate() error {
	for _, field := range []struct{ name, value string }{
		{"table", t.Table},
		{"column", t.Column},
		{"key", t.keyColumn()},
	} {
		if !identifierPattern.MatchString(field.value) {
			return fmt.Errorf("%w: %s %q", ErrInvalidIdentifier, field.name, field.value)
		}
	}
	return nil
}

func (t Target) keyColumn() string {
	if strings.TrimSpace(t.Key) == "" {
		return "rowid"
	}
	return t.Key
}

func (t Target) String() string {
	return t.Table + "." + t.Column
}

// quote wraps an already validated identifier. The rowid aliases stay bare
// so they resolve to the implicit key even when quoted names would not.
func quote(ident string) string {
	switch strings.ToLower(ident) {
	case "rowid", "oid", "_rowid_":
		return ident
	}
	return `"` + ident + `"`
}

// Row is one non-NULL value and its key.
type Row struct {
	Key   int64
	Value string
}

// Update replaces the value stored under Key.
type Update struct {
	Key   int64  `json:"key"`
	Value string `json:"value"`
}

// Source is an open SQLite database.
type Source struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open connects to an existing SQLite database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Source, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat sqlite db: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	return &Source{
		db:     db,
		path:   path,
		logger: logging.NewComponentLogger(logger, "sqlsource").With(logging.String(logging.FieldSource, path)),
	}, nil
}

// Close closes the underlying database connection.
func (s *Source) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Source) Path() string {
	return s.path
}

// Load returns every non-NULL value of target in key order.
func (s *Source) Load(ctx context.Context, target Target) ([]Row, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT %s, %s FROM %s WHERE %s IS NOT NULL ORDER BY %s",
		quote(target.keyColumn()), quote(target.Column), quote(target.Table),
		quote(target.Column), quote(target.keyColumn()),
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", target, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.Key, &row.Value); err != nil {
			return nil, fmt.Errorf("scan %s: %w", target, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", target, err)
	}
	s.logger.Debug("rows loaded", logging.String("target", target.String()), logging.Int("rows", len(out)))
	return out, nil
}

// Changes pairs rows with their canonical values and keeps only the rows
// whose value differs. canonical must be as long as rows.
func Changes(rows []Row, canonical []string) []Update {
	var updates []Update
	for i, row := range rows {
		if canonical[i] != row.Value {
			updates = append(updates, Update{Key: row.Key, Value: canonical[i]})
		}
	}
	return updates
}

// Apply writes updates in transactions of at most batchSize statements
// (all in one transaction when batchSize < 1) and returns the number of rows
// changed. A failed batch is rolled back; earlier batches stay committed.
func (s *Source) Apply(ctx context.Context, target Target, updates []Update, batchSize int) (int, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if len(updates) == 0 {
		return 0, nil
	}
	if batchSize < 1 {
		batchSize = len(updates)
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?",
		quote(target.Table), quote(target.Column), quote(target.keyColumn()))

	changed := 0
	for start := 0; start < len(updates); start += batchSize {
		end := min(start+batchSize, len(updates))
		n, err := s.applyBatch(ctx, stmt, updates[start:end])
		if err != nil {
			return changed, fmt.Errorf("update %s: %w", target, err)
		}
		changed += n
		s.logger.Debug("batch committed", logging.Int("rows", n), logging.Int("total", changed))
	}
	s.logger.Info("rows updated",
		logging.String("target", target.String()),
		logging.Int("rows", changed),
		logging.String(logging.FieldEventType, "rows_updated"),
	)
	return changed, nil
}

func (s *Source) applyBatch(ctx context.Context, stmt string, updates []Update) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer prepared.Close()

	changed := 0
	for _, update := range updates {
		res, err := prepared.ExecContext(ctx, update.Value, update.Key)
		if err != nil {
			return 0, fmt.Errorf("key %d: %w", update.Key, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			changed += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return changed, nil
}
