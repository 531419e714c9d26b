package potfile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/hashripper/internal/hashtype"
	"github.com/nao1215/hashripper/internal/model"
)

// FileName is the name of the database file inside the potfile directory.
const FileName = "hashripper.db"

// ErrNotFound is returned by Open when CreateIfNotExists is false and no
// database exists yet.
var ErrNotFound = errors.New("potfile not found")

// Potfile stores recovered plaintexts and crack history.
type Potfile struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Potfile behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default potfile options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the potfile inside dir.
func Open(dir string, opts Options) (*Potfile, error) {
	dbPath := filepath.Join(dir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check potfile path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create potfile directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open potfile: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	p := &Potfile{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := p.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return p, nil
}

// Path returns the database file path.
func (p *Potfile) Path() string {
	return p.dbPath
}

// Close closes the database connection.
func (p *Potfile) Close() error {
	return p.db.Close()
}

func (p *Potfile) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cracked (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hash TEXT NOT NULL,
		algorithm TEXT NOT NULL,
		plaintext TEXT NOT NULL,
		wordlist TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(hash, algorithm)
	);

	CREATE INDEX IF NOT EXISTS idx_cracked_hash ON cracked(hash);

	CREATE TABLE IF NOT EXISTS crack_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hash TEXT NOT NULL,
		status TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_hash ON crack_reports(hash);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON crack_reports(timestamp);
	`

	_, err := p.db.ExecContext(context.Background(), schema)
	return err
}

// normalizeHash is the key form of a hash: trimmed and lowercase.
func normalizeHash(hash string) string {
	return strings.ToLower(strings.TrimSpace(hash))
}

// Save stores rec, replacing any earlier plaintext for the same hash and
// algorithm.
func (p *Potfile) Save(ctx context.Context, rec model.Recovered) error {
	query := `
	INSERT INTO cracked (hash, algorithm, plaintext, wordlist)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(hash, algorithm) DO UPDATE SET
		plaintext = excluded.plaintext,
		wordlist = excluded.wordlist,
		timestamp = CURRENT_TIMESTAMP
	`

	_, err := p.db.ExecContext(ctx, query,
		normalizeHash(rec.Hash),
		rec.Algorithm.String(),
		rec.Plaintext,
		rec.Wordlist,
	)
	if err != nil {
		return fmt.Errorf("failed to save recovered plaintext: %w", err)
	}
	return nil
}

// Lookup returns the stored plaintext for hash. When algorithms is not
// empty only those algorithms are considered, and the first one in
// algorithms order wins. It returns nil, nil when nothing is stored.
func (p *Potfile) Lookup(ctx context.Context, hash string, algorithms []hashtype.HashType) (*model.Recovered, error) {
	query := `
	SELECT hash, algorithm, plaintext, wordlist, timestamp
	FROM cracked
	WHERE hash = ?
	`

	rows, err := p.db.QueryContext(ctx, query, normalizeHash(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to look up hash: %w", err)
	}
	defer rows.Close()

	found := make(map[hashtype.HashType]model.Recovered)
	var first *model.Recovered
	for rows.Next() {
		rec, err := scanRecovered(rows)
		if err != nil {
			return nil, err
		}
		found[rec.Algorithm] = rec
		if first == nil {
			first = &rec
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to look up hash: %w", err)
	}

	if len(algorithms) == 0 {
		return first, nil
	}
	for _, ht := range algorithms {
		if rec, ok := found[ht]; ok {
			return &rec, nil
		}
	}
	return nil, nil
}

// ListRecovered returns every stored plaintext, newest first.
func (p *Potfile) ListRecovered(ctx context.Context) ([]model.Recovered, error) {
	query := `
	SELECT hash, algorithm, plaintext, wordlist, timestamp
	FROM cracked
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list recovered plaintexts: %w", err)
	}
	defer rows.Close()

	var results []model.Recovered
	for rows.Next() {
		rec, err := scanRecovered(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, rec)
	}

	return results, rows.Err()
}

// Forget removes every stored plaintext for hash and reports how many rows
// were deleted.
func (p *Potfile) Forget(ctx context.Context, hash string) (int64, error) {
	result, err := p.db.ExecContext(ctx, `DELETE FROM cracked WHERE hash = ?`, normalizeHash(hash))
	if err != nil {
		return 0, fmt.Errorf("failed to forget hash: %w", err)
	}
	return result.RowsAffected()
}

func scanRecovered(rows *sql.Rows) (model.Recovered, error) {
	var (
		rec       model.Recovered
		algorithm string
		wordlist  sql.NullString
		timestamp string
	)
	if err := rows.Scan(&rec.Hash, &algorithm, &rec.Plaintext, &wordlist, &timestamp); err != nil {
		return model.Recovered{}, fmt.Errorf("failed to scan recovered plaintext: %w", err)
	}

	ht, err := hashtype.Parse(algorithm)
	if err != nil {
		return model.Recovered{}, fmt.Errorf("corrupt potfile entry for %s: %w", rec.Hash, err)
	}
	rec.Algorithm = ht
	rec.Wordlist = wordlist.String
	rec.CrackedAt = parseTimestamp(timestamp)
	return rec, nil
}

// SaveReport saves a finished crack report as JSON.
func (p *Potfile) SaveReport(ctx context.Context, report *model.CrackReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO crack_reports (hash, status, report_json)
	VALUES (?, ?, ?)
	`

	_, err = p.db.ExecContext(ctx, query,
		normalizeHash(report.Hash),
		report.Status.String(),
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save crack report: %w", err)
	}

	return nil
}

// GetHistory retrieves every saved report for hash, newest first.
// Malformed rows are skipped.
func (p *Potfile) GetHistory(ctx context.Context, hash string) ([]*model.CrackReport, error) {
	query := `
	SELECT report_json FROM crack_reports
	WHERE hash = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := p.db.QueryContext(ctx, query, normalizeHash(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to get crack history: %w", err)
	}
	defer rows.Close()

	var reports []*model.CrackReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		var report model.CrackReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// ReportMetadata summarizes a saved crack report.
type ReportMetadata struct {
	// ID is the row identifier of the report.
	ID int64

	// Hash is the target digest.
	Hash string

	// Status is the outcome recorded for the run.
	Status string

	// Timestamp is when the report was saved.
	Timestamp time.Time
}

// ListReports returns metadata for the most recent reports across all
// hashes, newest first. A non-positive limit returns everything.
func (p *Potfile) ListReports(ctx context.Context, limit int) ([]ReportMetadata, error) {
	query := `
	SELECT id, hash, status, timestamp
	FROM crack_reports
	ORDER BY timestamp DESC, id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var results []ReportMetadata
	for rows.Next() {
		var meta ReportMetadata
		var timestamp string
		if err := rows.Scan(&meta.ID, &meta.Hash, &meta.Status, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		meta.Timestamp = parseTimestamp(timestamp)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetReportByID retrieves a saved report by its row identifier.
func (p *Potfile) GetReportByID(ctx context.Context, id int64) (*model.CrackReport, error) {
	var reportJSON string
	err := p.db.QueryRowContext(ctx, `SELECT report_json FROM crack_reports WHERE id = ?`, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crack report: %w", err)
	}

	var report model.CrackReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// timestampFormats contains the timestamp formats that SQLite may return,
// most specific first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses a SQLite timestamp, returning the zero time when no
// known format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
