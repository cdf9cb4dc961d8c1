package ir

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// InspectedColumn is a column as read from information_schema
type InspectedColumn struct {
	ColumnSnapshot
	ColumnType string `json:"column_type"`
	Extra      string `json:"extra,omitempty"`
	// Default is the introspected default in the form SHOW CREATE TABLE prints
	// it: literals quoted, generated expressions bare. nil means no default.
	Default *string `json:"default,omitempty"`
}

// InspectedTable holds the columns of one table in ordinal order
type InspectedTable struct {
	Schema  string             `json:"schema"`
	Name    string             `json:"name"`
	Columns []*InspectedColumn `json:"columns"`
}

// Column returns the named column, or nil. MySQL column names are case-insensitive.
func (t *InspectedTable) Column(name string) *InspectedColumn {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// Inspector reads column metadata from a live MySQL or MariaDB server
type Inspector struct {
	db *sql.DB

	versionOnce sync.Once
	version     string
	versionErr  error
}

// NewInspector creates a new inspector over db
func NewInspector(db *sql.DB) *Inspector {
	return &Inspector{db: db}
}

// DatabaseVersion returns the server version string, e.g. "8.0.36" or "10.11.6-MariaDB"
func (i *Inspector) DatabaseVersion(ctx context.Context) (string, error) {
	i.versionOnce.Do(func() {
		i.versionErr = i.db.QueryRowContext(ctx, "SELECT VERSION()").Scan(&i.version)
	})
	return i.version, i.versionErr
}

const columnsQuery = `
SELECT
    c.COLUMN_NAME,
    c.COLUMN_TYPE,
    c.IS_NULLABLE,
    c.COLUMN_DEFAULT,
    c.EXTRA
FROM information_schema.COLUMNS c
WHERE c.TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE())
  AND c.TABLE_NAME = ?
ORDER BY c.ORDINAL_POSITION`

// InspectTable reads every column of schema.table. An empty schema means the
// connection's current database.
func (i *Inspector) InspectTable(ctx context.Context, schema, table string) (*InspectedTable, error) {
	version, err := i.DatabaseVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read server version: %w", err)
	}
	mariadb := strings.Contains(strings.ToLower(version), "mariadb")

	rows, err := i.db.QueryContext(ctx, columnsQuery, schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns of %s: %w", table, err)
	}
	defer rows.Close()

	result := &InspectedTable{Schema: schema, Name: table}
	for rows.Next() {
		var (
			name, columnType, isNullable, extra string
			columnDefault                       sql.NullString
		)
		if err := rows.Scan(&name, &columnType, &isNullable, &columnDefault, &extra); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		result.Columns = append(result.Columns, buildInspectedColumn(name, columnType, isNullable, columnDefault, extra, mariadb))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	if len(result.Columns) == 0 {
		return nil, fmt.Errorf("table '%s' does not exist in the database", table)
	}
	return result, nil
}

// InspectColumn reads a single column of schema.table
func (i *Inspector) InspectColumn(ctx context.Context, schema, table, column string) (*InspectedColumn, error) {
	t, err := i.InspectTable(ctx, schema, table)
	if err != nil {
		return nil, err
	}
	c := t.Column(column)
	if c == nil {
		return nil, fmt.Errorf("column '%s' does not exist in table '%s'", column, table)
	}
	return c, nil
}

// InspectTables reads several tables concurrently, keyed by table name
func (i *Inspector) InspectTables(ctx context.Context, schema string, tables []string) (map[string]*InspectedTable, error) {
	// Resolve the version once before fanning out
	if _, err := i.DatabaseVersion(ctx); err != nil {
		return nil, fmt.Errorf("failed to read server version: %w", err)
	}

	var (
		mu     sync.Mutex
		result = make(map[string]*InspectedTable, len(tables))
	)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, table := range tables {
		eg.Go(func() error {
			t, err := i.InspectTable(egCtx, schema, table)
			if err != nil {
				return err
			}
			mu.Lock()
			result[table] = t
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

var (
	generatedDefaultPattern = regexp.MustCompile(`(?i)^(current_timestamp|now|localtime|localtimestamp)(\s*\(\s*\d*\s*\))?$`)
	onUpdatePattern         = regexp.MustCompile(`(?i)\bon update\s+(\w+(\s*\(\s*\d*\s*\))?)`)
)

func buildInspectedColumn(name, columnType, isNullable string, columnDefault sql.NullString, extra string, mariadb bool) *InspectedColumn {
	column := &InspectedColumn{
		ColumnSnapshot: ColumnSnapshot{
			Name:          name,
			Type:          ParseType(columnType),
			Nullable:      Bool(strings.EqualFold(isNullable, "YES")),
			Autoincrement: strings.Contains(strings.ToLower(extra), "auto_increment"),
			OnUpdate:      onUpdateExpression(extra),
		},
		ColumnType: columnType,
		Extra:      extra,
		Default:    introspectedDefault(columnDefault, extra, mariadb),
	}
	if column.Default != nil {
		column.ServerDefault = RawSQL(*column.Default)
	}
	return column
}

// introspectedDefault converts information_schema.COLUMNS.COLUMN_DEFAULT to
// SHOW CREATE TABLE form.
//
// MySQL stores literals unquoted and marks expression defaults with
// DEFAULT_GENERATED in EXTRA (8.0.13+); older servers leave CURRENT_TIMESTAMP
// unmarked. MariaDB already quotes literals and reports an explicit NULL
// default as the text NULL.
func introspectedDefault(columnDefault sql.NullString, extra string, mariadb bool) *string {
	if !columnDefault.Valid {
		return nil
	}
	value := columnDefault.String

	if mariadb {
		if strings.EqualFold(value, "NULL") {
			return nil
		}
		return &value
	}

	if strings.Contains(strings.ToUpper(extra), "DEFAULT_GENERATED") || generatedDefaultPattern.MatchString(value) {
		return &value
	}

	quoted := QuoteString(value)
	return &quoted
}

// onUpdateExpression extracts the expression of an "on update ..." marker in
// EXTRA, e.g. "DEFAULT_GENERATED on update CURRENT_TIMESTAMP(3)"
func onUpdateExpression(extra string) string {
	m := onUpdatePattern.FindStringSubmatch(extra)
	if m == nil {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(m[1], " ", ""))
}
