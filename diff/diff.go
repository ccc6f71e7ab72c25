package diff

import (
	"fmt"

	"github.com/ridoystarlord/primitivedb/schema"
)

type OperationType string

const (
	CreateTable      OperationType = "CREATE_TABLE"
	AddColumn        OperationType = "ADD_COLUMN"
	DropColumn       OperationType = "DROP_COLUMN"
	ChangeColumnType OperationType = "CHANGE_COLUMN_TYPE"
)

type Operation struct {
	Type       OperationType
	TableName  string
	Columns    []schema.Column // for CREATE_TABLE
	Column     *schema.Column  // for ADD_COLUMN, CHANGE_COLUMN_TYPE
	ColumnName string          // for DROP_COLUMN
	OldType    schema.ColumnType
}

// Specs returns the column specs of a CREATE_TABLE operation.
func (op Operation) Specs() []string {
	return schema.Table{Name: op.TableName, Columns: op.Columns}.Specs()
}

func (op Operation) String() string {
	switch op.Type {
	case CreateTable:
		return fmt.Sprintf("create table %s (%s)", op.TableName, schema.Table{Columns: op.Columns})
	case AddColumn:
		return fmt.Sprintf("table %s: column %s is declared but not cataloged", op.TableName, op.Column.Spec())
	case DropColumn:
		return fmt.Sprintf("table %s: column %s is cataloged but not declared", op.TableName, op.ColumnName)
	case ChangeColumnType:
		return fmt.Sprintf("table %s: column %s is cataloged as %s", op.TableName, op.Column.Spec(), op.OldType)
	}
	return string(op.Type)
}

// DiffTables compares declared tables with the catalog. Tables that are only
// in the catalog are left alone.
func DiffTables(declared []schema.Table, cat schema.Catalog) []Operation {
	var ops []Operation

	for _, want := range declared {
		have, exists := cat.Table(want.Name)
		if !exists {
			ops = append(ops, Operation{
				Type:      CreateTable,
				TableName: want.Name,
				Columns:   want.Columns,
			})
			continue
		}

		for _, col := range want.Columns {
			existing, ok := have.Column(col.Name)
			switch {
			case !ok:
				ops = append(ops, Operation{Type: AddColumn, TableName: want.Name, Column: &col})
			case existing.Type != col.Type:
				ops = append(ops, Operation{Type: ChangeColumnType, TableName: want.Name, Column: &col, OldType: existing.Type})
			}
		}

		for _, col := range have.Columns {
			if _, ok := want.Column(col.Name); !ok {
				ops = append(ops, Operation{Type: DropColumn, TableName: want.Name, ColumnName: col.Name})
			}
		}
	}

	return ops
}
