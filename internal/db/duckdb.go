package db

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	dbInstance *sql.DB
	dbOnce     sync.Once
	dbErr      error
)

// GetDB returns the process-wide in-memory DuckDB connection.
func GetDB() (*sql.DB, error) {
	dbOnce.Do(func() {
		dbInstance, dbErr = openDuckDB()
	})
	return dbInstance, dbErr
}

func openDuckDB() (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	// DuckDB works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DuckDB: %w", err)
	}

	return db, nil
}

// CSVQuery builds a query that returns every row of the CSV file at path,
// all columns as VARCHAR, with short rows padded with NULL.
func CSVQuery(path string) string {
	return fmt.Sprintf(`
		SELECT *
		FROM read_csv_auto('%s',
			header = true,
			all_varchar = true,
			null_padding = true
		)
	`, quoteLiteral(path))
}

func quoteLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
