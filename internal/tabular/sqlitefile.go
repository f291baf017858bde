package tabular

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// sqliteColumns maps the records table to the header names the rest of the
// tool expects, in column order.
var sqliteColumns = []struct {
	db     string
	header string
}{
	{"report_name", "Report Name"},
	{"expense_date", "Expense Date"},
	{"expense_amount", "Expense Amount"},
	{"expense_description", "Expense Description"},
	{"expense_category", "Expense Category"},
	{"paid_through", "Paid Through"},
	{"merchant_name", "Merchant Name"},
	{"income_amount", "Income Amount"},
}

func readSQLite(path string) (*Table, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	names := make([]string, len(sqliteColumns))
	headers := make([]string, len(sqliteColumns))
	for i, c := range sqliteColumns {
		names[i] = c.db
		headers[i] = c.header
	}

	query := fmt.Sprintf("SELECT %s FROM records ORDER BY id", strings.Join(names, ", "))
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	t := NewTable(headers)
	for rows.Next() {
		values := make([]string, len(names))
		dest := make([]interface{}, len(names))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		t.Append(values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return t, nil
}

func writeSQLite(path string, t *Table) error {
	db, err := openSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	// Each incoming column is matched to a table column by name; columns
	// the table does not carry (derived totals and the like) are dropped.
	source := make([]int, len(sqliteColumns))
	for i, c := range sqliteColumns {
		source[i] = t.ColumnIndex(c.header)
	}

	names := make([]string, len(sqliteColumns))
	marks := make([]string, len(sqliteColumns))
	for i, c := range sqliteColumns {
		names[i] = c.db
		marks[i] = "?"
	}
	insert := fmt.Sprintf("INSERT INTO records (%s) VALUES (%s)",
		strings.Join(names, ", "), strings.Join(marks, ", "))

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		args := make([]interface{}, len(source))
		for i, src := range source {
			args[i] = t.Cell(row, src)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}
	return tx.Commit()
}

func openSQLite(path string) (*sql.DB, error) {
	if err := runMigrations(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func runMigrations(path string) error {
	// Migrations get their own connection so the reader sees a settled schema.
	migrateDB, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
