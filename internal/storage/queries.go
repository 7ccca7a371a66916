package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pable/lck-metrics/internal/dataset"
)

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// InsertTable creates name with one column per table column and bulk-inserts
// every row in a transaction. Numeric columns are REAL, the rest TEXT; null
// cells are stored as NULL.
func (db *DB) InsertTable(name string, t *dataset.Table) error {
	cols := t.Columns()
	if len(cols) == 0 {
		return fmt.Errorf("create %s: no columns", name)
	}

	defs := make([]string, len(cols))
	numeric := make([]bool, len(cols))
	for j, c := range cols {
		numeric[j] = t.Column(c).Numeric()
		typ := "TEXT"
		if numeric[j] {
			typ = "REAL"
		}
		defs[j] = quoteIdent(c) + " " + typ
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(name))); err != nil {
		return fmt.Errorf("drop %s: %w", name, err)
	}
	if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		quoteIdent(name), placeholders(len(cols))))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, c := range cols {
			col := t.Column(c)
			switch v, ok := col.Str(i); {
			case !ok:
				args[j] = nil
			case numeric[j]:
				args[j], _ = col.Float(i)
			default:
				args[j] = v
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", name, i, err)
		}
	}
	return tx.Commit()
}

// QueryRaw runs an arbitrary query and returns column names and rows as
// strings. NULL becomes "—".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "—"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

// Schema lists the columns and SQL types of a mirrored table.
func (db *DB) Schema(table string) ([][2]string, error) {
	rows, err := db.conn.Query(fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	var out [][2]string
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		out = append(out, [2]string{name, typ})
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
