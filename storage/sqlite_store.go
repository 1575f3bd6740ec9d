package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"azai/confidence"
	"azai/pipeline"
	"azai/timesheet"
)

// Timesheet is one stored document with its latest normalization outcome.
type Timesheet struct {
	Document  timesheet.Document `json:"document"`
	Report    confidence.Report  `json:"confidence"`
	Issues    []pipeline.Issue   `json:"issues"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// FromResult converts a processed document into its stored form.
func FromResult(result pipeline.Result) Timesheet {
	return Timesheet{Document: result.Document, Report: result.Report, Issues: result.Issues}
}

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var ErrTimesheetNotFound = errors.New("timesheet not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db, now: time.Now}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS timesheets (
	document_id TEXT PRIMARY KEY,
	source_file TEXT NOT NULL DEFAULT '',
	source_format TEXT NOT NULL DEFAULT '',
	client_name TEXT NOT NULL DEFAULT '',
	week_of TEXT NOT NULL DEFAULT '',
	extracted_data TEXT NOT NULL,
	confidence TEXT NOT NULL,
	overall_confidence REAL NOT NULL CHECK(overall_confidence >= 0 AND overall_confidence <= 1),
	recommendation TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_timesheets_recommendation ON timesheets(recommendation);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	// issues arrived after the first schema; older databases get it added.
	if err := s.ensureColumn("timesheets", "issues", `TEXT NOT NULL DEFAULT '[]'`); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) ensureColumn(table, column, definition string) error {
	rows, err := s.db.Query(fmt.Sprintf(`PRAGMA table_info(%s);`, table))
	if err != nil {
		return fmt.Errorf("query table info: %w", err)
	}
	defer rows.Close()

	hasColumn := false
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scan table info: %w", err)
		}
		if strings.EqualFold(name, column) {
			hasColumn = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate table info: %w", err)
	}
	_ = rows.Close()

	if hasColumn {
		return nil
	}

	if _, err := s.db.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s;`, table, column, definition)); err != nil {
		return fmt.Errorf("add %s column: %w", column, err)
	}

	return nil
}

const upsertStmt = `
INSERT INTO timesheets (
	document_id,
	source_file,
	source_format,
	client_name,
	week_of,
	extracted_data,
	confidence,
	overall_confidence,
	recommendation,
	issues,
	updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(document_id) DO UPDATE SET
	source_file = excluded.source_file,
	source_format = excluded.source_format,
	client_name = excluded.client_name,
	week_of = excluded.week_of,
	extracted_data = excluded.extracted_data,
	confidence = excluded.confidence,
	overall_confidence = excluded.overall_confidence,
	recommendation = excluded.recommendation,
	issues = excluded.issues,
	updated_at = excluded.updated_at;`

type execer interface {
	Exec(args ...any) (sql.Result, error)
}

// SaveTimesheets upserts all records in one transaction and returns how
// many were written.
func (s *SQLiteStore) SaveTimesheets(records []Timesheet) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(upsertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare upsert statement: %w", err)
	}
	defer stmt.Close()

	saved := 0
	updatedAt := s.now().UTC()
	for _, record := range records {
		if err := saveWith(stmt, record, updatedAt); err != nil {
			_ = tx.Rollback()
			return saved, err
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("commit transaction: %w", err)
	}

	return saved, nil
}

func (s *SQLiteStore) SaveTimesheet(record Timesheet) error {
	stmt, err := s.db.Prepare(upsertStmt)
	if err != nil {
		return fmt.Errorf("prepare upsert statement: %w", err)
	}
	defer stmt.Close()

	return saveWith(stmt, record, s.now().UTC())
}

func saveWith(stmt execer, record Timesheet, updatedAt time.Time) error {
	id := strings.TrimSpace(record.Document.ID)
	if id == "" {
		return fmt.Errorf("timesheet document id must not be empty")
	}

	data, err := json.Marshal(record.Document.Data)
	if err != nil {
		return fmt.Errorf("encode extracted data for %s: %w", id, err)
	}
	report, err := json.Marshal(record.Report)
	if err != nil {
		return fmt.Errorf("encode confidence for %s: %w", id, err)
	}
	issues := record.Issues
	if issues == nil {
		issues = []pipeline.Issue{}
	}
	encodedIssues, err := json.Marshal(issues)
	if err != nil {
		return fmt.Errorf("encode issues for %s: %w", id, err)
	}

	if _, err := stmt.Exec(
		id,
		record.Document.SourceFile,
		record.Document.SourceFormat,
		record.Document.Data.ClientName,
		record.Document.Data.WeekOf,
		string(data),
		string(report),
		record.Report.Overall,
		string(record.Report.Recommendation),
		string(encodedIssues),
		updatedAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("save timesheet %s: %w", id, err)
	}
	return nil
}

const selectColumns = `
SELECT
	document_id,
	source_file,
	source_format,
	extracted_data,
	confidence,
	issues,
	updated_at
FROM timesheets`

type scanner interface {
	Scan(dest ...any) error
}

func scanTimesheet(row scanner) (Timesheet, error) {
	var (
		record     Timesheet
		dataRaw    string
		reportRaw  string
		issuesRaw  string
		updatedRaw string
	)
	if err := row.Scan(
		&record.Document.ID,
		&record.Document.SourceFile,
		&record.Document.SourceFormat,
		&dataRaw,
		&reportRaw,
		&issuesRaw,
		&updatedRaw,
	); err != nil {
		return Timesheet{}, err
	}

	if err := json.Unmarshal([]byte(dataRaw), &record.Document.Data); err != nil {
		return Timesheet{}, fmt.Errorf("decode extracted data for %s: %w", record.Document.ID, err)
	}
	if err := json.Unmarshal([]byte(reportRaw), &record.Report); err != nil {
		return Timesheet{}, fmt.Errorf("decode confidence for %s: %w", record.Document.ID, err)
	}
	if err := json.Unmarshal([]byte(issuesRaw), &record.Issues); err != nil {
		return Timesheet{}, fmt.Errorf("decode issues for %s: %w", record.Document.ID, err)
	}

	updatedAt, err := time.Parse(time.RFC3339, updatedRaw)
	if err != nil {
		return Timesheet{}, fmt.Errorf("parse updated_at %q: %w", updatedRaw, err)
	}
	record.UpdatedAt = updatedAt
	return record, nil
}

// GetTimesheet returns ErrTimesheetNotFound for unknown ids.
func (s *SQLiteStore) GetTimesheet(id string) (Timesheet, error) {
	record, err := scanTimesheet(s.db.QueryRow(selectColumns+` WHERE document_id = ?;`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Timesheet{}, ErrTimesheetNotFound
		}
		return Timesheet{}, fmt.Errorf("query timesheet %s: %w", id, err)
	}
	return record, nil
}

// ListTimesheets returns stored timesheets in first-import order. An empty
// recommendation lists all of them.
func (s *SQLiteStore) ListTimesheets(recommendation confidence.Recommendation) ([]Timesheet, error) {
	query := selectColumns
	args := make([]any, 0, 1)
	if recommendation != "" {
		query += ` WHERE recommendation = ?`
		args = append(args, string(recommendation))
	}
	query += ` ORDER BY rowid;`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query timesheets: %w", err)
	}
	defer rows.Close()

	records := make([]Timesheet, 0, 64)
	for rows.Next() {
		record, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan timesheet: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timesheets: %w", err)
	}

	return records, nil
}

// DeleteTimesheet removes the row with the given id.
func (s *SQLiteStore) DeleteTimesheet(id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, fmt.Errorf("timesheet document id must not be empty")
	}

	res, err := s.db.Exec(`DELETE FROM timesheets WHERE document_id = ?;`, id)
	if err != nil {
		return false, fmt.Errorf("delete timesheet %s: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *SQLiteStore) DeleteAllTimesheets() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM timesheets;`)
	if err != nil {
		return 0, fmt.Errorf("delete timesheets: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows, nil
}
