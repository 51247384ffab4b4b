package db

import (
	"database/sql"
	"fmt"
	"os"
	"sort"
	"strings"

	"mrparker/models"

	_ "modernc.org/sqlite"
)

// DB gives read access to the parking dataset. The schema is introspected
// once at startup; every query opens and closes its own connection so no
// cursor survives a call.
type DB struct {
	path   string
	schema *models.Schema
}

func New(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSchemaUnavailable, err)
	}

	d := &DB{path: path}

	schema, err := d.loadSchema()
	if err != nil {
		return nil, err
	}
	d.schema = schema

	return d, nil
}

// Schema returns the description built at startup. Immutable thereafter;
// rebuilding requires a new DB.
func (d *DB) Schema() *models.Schema {
	return d.schema
}

func (d *DB) open() (*sql.DB, error) {
	return sql.Open("sqlite", d.path)
}

func (d *DB) loadSchema() (*models.Schema, error) {
	conn, err := d.open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSchemaUnavailable, err)
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSchemaUnavailable, err)
	}

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: %v", models.ErrSchemaUnavailable, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: %v", models.ErrSchemaUnavailable, err)
	}
	rows.Close()

	sort.Strings(names)

	schema := &models.Schema{}
	for _, name := range names {
		table, err := loadTable(conn, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrSchemaUnavailable, err)
		}
		schema.Tables = append(schema.Tables, table)
	}

	return schema, nil
}

// quoteIdent wraps an identifier in SQL double quotes, doubling any
// embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func loadTable(conn *sql.DB, name string) (models.TableInfo, error) {
	table := models.TableInfo{Name: name}

	cols, err := conn.Query("PRAGMA table_info(" + quoteIdent(name) + ")")
	if err != nil {
		return table, err
	}
	for cols.Next() {
		var (
			cid     int
			colName string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := cols.Scan(&cid, &colName, &colType, &notNull, &dflt, &pk); err != nil {
			cols.Close()
			return table, err
		}
		table.Columns = append(table.Columns, models.ColumnInfo{
			Name:       colName,
			Type:       colType,
			Nullable:   notNull == 0,
			PrimaryKey: pk > 0,
		})
	}
	if err := cols.Err(); err != nil {
		cols.Close()
		return table, err
	}
	cols.Close()

	fks, err := conn.Query("PRAGMA foreign_key_list(" + quoteIdent(name) + ")")
	if err != nil {
		return table, err
	}
	defer fks.Close()
	for fks.Next() {
		var (
			id, seq            int
			toTable            string
			fromCol, toCol     sql.NullString
			onUpdate, onDelete string
			match              string
		)
		if err := fks.Scan(&id, &seq, &toTable, &fromCol, &toCol, &onUpdate, &onDelete, &match); err != nil {
			return table, err
		}
		table.Relationships = append(table.Relationships, models.Relationship{
			FromColumn: fromCol.String,
			ToTable:    toTable,
			ToColumn:   toCol.String,
		})
	}
	return table, fks.Err()
}

// Execute runs one generated statement, materializes every row, and closes
// the connection before returning. All engine errors come back wrapped as
// ErrExecutionFailed; nothing escapes as a raw driver fault.
func (d *DB) Execute(sqlQuery string) (*models.QueryResult, error) {
	conn, err := d.open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrExecutionFailed, err)
	}
	defer conn.Close()

	rows, err := conn.Query(sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrExecutionFailed, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrExecutionFailed, err)
	}

	result := &models.QueryResult{Columns: columns}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrExecutionFailed, err)
		}

		row := make([]interface{}, len(columns))
		for i, val := range values {
			// []byte does not serialize as text; flatten it here.
			if b, ok := val.([]byte); ok {
				row[i] = string(b)
			} else {
				row[i] = val
			}
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrExecutionFailed, err)
	}

	return result, nil
}
