package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/db"
)

// ErrMissingColumn is returned when a CSV header lacks an essential column.
var ErrMissingColumn = errors.New("missing column")

// Source yields raw rows in source order.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([]Row, error)
}

// Open picks a Source for location: a postgres:// DSN reads table, anything
// else is a CSV path.
func Open(location, table string, logger *zap.Logger) Source {
	if db.IsPostgresDSN(location) {
		return &PostgresSource{DSN: location, Table: table, Logger: logger}
	}
	return &CSVSource{Path: location}
}

// CSVSource reads a timetable CSV through DuckDB.
type CSVSource struct {
	Path string
}

func (s *CSVSource) Name() string { return s.Path }

var csvColumns = []string{"subject", "teacher", "division", "day", "time", "room"}

func (s *CSVSource) Rows(ctx context.Context) ([]Row, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("failed to open timetable %s: %w", s.Path, err)
	}

	database, err := db.GetDB()
	if err != nil {
		return nil, err
	}

	rows, err := database.QueryContext(ctx, db.CSVQuery(s.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", s.Path, err)
	}
	index, err := columnIndex(names)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}

	values := make([]sql.NullString, len(names))
	dest := make([]any, len(names))
	for i := range values {
		dest[i] = &values[i]
	}

	var out []Row
	for line := 1; rows.Next(); line++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		for i := range values {
			values[i] = sql.NullString{}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d of %s: %w", line, s.Path, err)
		}
		field := func(name string) string {
			i, ok := index[name]
			if !ok {
				return ""
			}
			return values[i].String
		}
		out = append(out, Row{
			Line:     line,
			Subject:  field("subject"),
			Teacher:  field("teacher"),
			Division: field("division"),
			Day:      field("day"),
			Time:     field("time"),
			Room:     field("room"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return out, nil
}

// columnIndex maps lower-cased header names to their position. Teacher is
// optional; the other columns are not.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	for _, col := range csvColumns {
		if col == "teacher" {
			continue
		}
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

// PostgresSource reads sessions from a table with the timetable's columns
// and an id column giving source order.
type PostgresSource struct {
	DSN    string
	Table  string
	Logger *zap.Logger
}

func (s *PostgresSource) Name() string { return "postgres:" + s.Table }

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

type tableRow struct {
	Subject  sql.NullString
	Teacher  sql.NullString
	Division sql.NullString
	Day      sql.NullString
	Time     sql.NullString
	Room     sql.NullString
}

func (s *PostgresSource) Rows(ctx context.Context) ([]Row, error) {
	if !tableName.MatchString(s.Table) {
		return nil, fmt.Errorf("invalid table name %q", s.Table)
	}

	conn, err := db.OpenPostgres(s.DSN, s.Logger)
	if err != nil {
		return nil, err
	}
	defer db.ClosePostgres(conn)

	var records []tableRow
	err = conn.WithContext(ctx).
		Table(s.Table).
		Select(`subject, teacher, division, day, "time", room`).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.Table, err)
	}

	out := make([]Row, 0, len(records))
	for i, r := range records {
		out = append(out, Row{
			Line:     i + 1,
			Subject:  r.Subject.String,
			Teacher:  r.Teacher.String,
			Division: r.Division.String,
			Day:      r.Day.String,
			Time:     r.Time.String,
			Room:     r.Room.String,
		})
	}
	return out, nil
}
