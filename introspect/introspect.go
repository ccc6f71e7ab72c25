package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridoystarlord/primitivedb/schema"
)

type ExistingTable struct {
	TableName string
	Columns   []ExistingColumn
}

type ExistingColumn struct {
	ColumnName   string
	DataType     string
	IsPrimaryKey bool
}

// Querier is the subset of pgxpool.Pool used here.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ Querier = (*pgxpool.Pool)(nil)

// IntrospectTables reads every base table of the public schema with its
// columns in ordinal order.
func IntrospectTables(ctx context.Context, db Querier) ([]ExistingTable, error) {
	tablesQuery := `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = 'public' AND table_type='BASE TABLE'
	ORDER BY table_name;
	`

	rows, err := db.Query(ctx, tablesQuery)
	if err != nil {
		return nil, fmt.Errorf("querying tables: %v", err)
	}
	tableNames, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning table names: %v", err)
	}

	var tables []ExistingTable
	for _, tableName := range tableNames {
		columns, err := getColumns(ctx, db, tableName)
		if err != nil {
			return nil, fmt.Errorf("getting columns for table %s: %v", tableName, err)
		}
		tables = append(tables, ExistingTable{TableName: tableName, Columns: columns})
	}

	return tables, nil
}

func getColumns(ctx context.Context, db Querier, tableName string) ([]ExistingColumn, error) {
	columnsQuery := `
	SELECT
		c.column_name,
		c.data_type,
		EXISTS (
			SELECT 1
			FROM information_schema.key_column_usage kcu
			JOIN information_schema.table_constraints tc
				ON kcu.constraint_name = tc.constraint_name AND kcu.table_name = tc.table_name
			WHERE tc.constraint_type = 'PRIMARY KEY'
				AND kcu.table_name = c.table_name
				AND kcu.column_name = c.column_name
		) AS is_primary
	FROM information_schema.columns c
	WHERE c.table_schema = 'public' AND c.table_name = $1
	ORDER BY c.ordinal_position;
	`

	rows, err := db.Query(ctx, columnsQuery, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %v", err)
	}
	defer rows.Close()

	var columns []ExistingColumn
	for rows.Next() {
		var col ExistingColumn
		if err := rows.Scan(&col.ColumnName, &col.DataType, &col.IsPrimaryKey); err != nil {
			return nil, fmt.Errorf("scanning column: %v", err)
		}
		columns = append(columns, col)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating column rows: %v", rows.Err())
	}

	return columns, nil
}

// MapColumnType maps a Postgres data_type to one of the stored column types.
// Anything that is not an integer or boolean type is kept as text.
func MapColumnType(dataType string) schema.ColumnType {
	switch strings.ToLower(strings.TrimSpace(dataType)) {
	case "integer", "bigint", "smallint", "int", "int2", "int4", "int8", "serial", "bigserial", "smallserial":
		return schema.TypeInt
	case "boolean", "bool":
		return schema.TypeBool
	default:
		return schema.TypeStr
	}
}

// ColumnSpecs converts the table's columns to name:type specs. An integer
// primary key called "id" becomes the ID column.
func (t ExistingTable) ColumnSpecs() []string {
	specs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		col := schema.Column{Name: c.ColumnName, Type: MapColumnType(c.DataType)}
		if c.IsPrimaryKey && col.Type == schema.TypeInt && strings.EqualFold(c.ColumnName, schema.IDColumn) {
			col.Name = schema.IDColumn
		}
		specs = append(specs, col.Spec())
	}
	return specs
}
