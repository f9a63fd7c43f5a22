package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/chatstat/chatstat/pkg/parser"
)

// ErrNotFound is returned when an import id does not exist.
var ErrNotFound = errors.New("import not found")

// Import describes one stored chat export.
type Import struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	ImportedAt   time.Time `json:"imported_at"`
	MessageCount int       `json:"message_count"`
}

type importRow struct {
	ID           string `db:"id"`
	Source       string `db:"source"`
	ImportedAt   string `db:"imported_at"`
	MessageCount int    `db:"message_count"`
}

func (r importRow) toImport() (Import, error) {
	ts, err := time.Parse(time.RFC3339Nano, r.ImportedAt)
	if err != nil {
		return Import{}, fmt.Errorf("parsing imported_at for %s: %w", r.ID, err)
	}
	return Import{
		ID:           r.ID,
		Source:       r.Source,
		ImportedAt:   ts,
		MessageCount: r.MessageCount,
	}, nil
}

type messageRow struct {
	ImportID  string `db:"import_id"`
	Seq       int    `db:"seq"`
	Timestamp string `db:"timestamp"`
	Author    string `db:"author"`
	Text      string `db:"text"`
	Date      string `db:"date"`
	Year      int    `db:"year"`
	MonthNum  int    `db:"month_num"`
	Month     string `db:"month"`
	Day       int    `db:"day"`
	DayName   string `db:"day_name"`
	Hour      int    `db:"hour"`
	Minute    int    `db:"minute"`
	Period    string `db:"period"`
}

func newMessageRow(importID string, seq int, m parser.Message) messageRow {
	return messageRow{
		ImportID:  importID,
		Seq:       seq,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
		Author:    m.Author,
		Text:      m.Text,
		Date:      m.Date,
		Year:      m.Year,
		MonthNum:  m.MonthNum,
		Month:     m.Month,
		Day:       m.Day,
		DayName:   m.DayName,
		Hour:      m.Hour,
		Minute:    m.Minute,
		Period:    m.Period,
	}
}

func (r messageRow) toMessage() (parser.Message, error) {
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return parser.Message{}, fmt.Errorf("parsing timestamp of message %d: %w", r.Seq, err)
	}
	return parser.Message{
		Timestamp: ts,
		Author:    r.Author,
		Text:      r.Text,
		Date:      r.Date,
		Year:      r.Year,
		MonthNum:  r.MonthNum,
		Month:     r.Month,
		Day:       r.Day,
		DayName:   r.DayName,
		Hour:      r.Hour,
		Minute:    r.Minute,
		Period:    r.Period,
	}, nil
}

// Store keeps parsed message tables keyed by import id.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// Open connects to the SQLite database at path, creating and migrating
// it as needed.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := connect(path, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("database opened", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveImport stores messages as a new import and returns its record.
func (s *Store) SaveImport(ctx context.Context, source string, messages []parser.Message) (*Import, error) {
	imp := Import{
		ID:           uuid.NewString(),
		Source:       source,
		ImportedAt:   time.Now().UTC().Truncate(time.Second),
		MessageCount: len(messages),
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.logger.ErrorContext(ctx, "rolling back import", "error", err, "import_id", imp.ID)
		}
	}()

	row := importRow{
		ID:           imp.ID,
		Source:       imp.Source,
		ImportedAt:   imp.ImportedAt.Format(time.RFC3339Nano),
		MessageCount: imp.MessageCount,
	}
	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO imports (id, source, imported_at, message_count)
		VALUES (:id, :source, :imported_at, :message_count)`, row); err != nil {
		return nil, fmt.Errorf("inserting import: %w", err)
	}

	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO messages (import_id, seq, timestamp, author, text, date, year,
			month_num, month, day, day_name, hour, minute, period)
		VALUES (:import_id, :seq, :timestamp, :author, :text, :date, :year,
			:month_num, :month, :day, :day_name, :hour, :minute, :period)`)
	if err != nil {
		return nil, fmt.Errorf("preparing message insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range messages {
		if _, err := stmt.ExecContext(ctx, newMessageRow(imp.ID, i, m)); err != nil {
			return nil, fmt.Errorf("inserting message %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}

	s.logger.InfoContext(ctx, "import saved", "import_id", imp.ID, "source", source, "messages", len(messages))
	return &imp, nil
}

// ListImports returns all imports, newest first.
func (s *Store) ListImports(ctx context.Context) ([]Import, error) {
	var rows []importRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT id, source, imported_at, message_count
		FROM imports
		ORDER BY imported_at DESC, rowid DESC`); err != nil {
		return nil, fmt.Errorf("listing imports: %w", err)
	}

	imports := make([]Import, 0, len(rows))
	for _, r := range rows {
		imp, err := r.toImport()
		if err != nil {
			return nil, err
		}
		imports = append(imports, imp)
	}
	return imports, nil
}

// GetImport returns the import with the given id.
func (s *Store) GetImport(ctx context.Context, id string) (*Import, error) {
	var row importRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, source, imported_at, message_count
		FROM imports WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting import %s: %w", id, err)
	}

	imp, err := row.toImport()
	if err != nil {
		return nil, err
	}
	return &imp, nil
}

// Messages returns the messages of an import in their original order.
func (s *Store) Messages(ctx context.Context, id string) ([]parser.Message, error) {
	if _, err := s.GetImport(ctx, id); err != nil {
		return nil, err
	}

	var rows []messageRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT import_id, seq, timestamp, author, text, date, year, month_num,
			month, day, day_name, hour, minute, period
		FROM messages
		WHERE import_id = ?
		ORDER BY seq`, id); err != nil {
		return nil, fmt.Errorf("loading messages for %s: %w", id, err)
	}

	messages := make([]parser.Message, 0, len(rows))
	for _, r := range rows {
		m, err := r.toMessage()
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// DeleteImport removes an import and its messages.
func (s *Store) DeleteImport(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM imports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting import %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting import %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.logger.InfoContext(ctx, "import deleted", "import_id", id)
	return nil
}
