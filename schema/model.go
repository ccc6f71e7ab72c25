package schema

import (
	"fmt"
	"strings"
)

// IDColumn is the name of the mandatory integer key every table carries.
const IDColumn = "ID"

type ColumnType string

const (
	TypeInt  ColumnType = "int"
	TypeStr  ColumnType = "str"
	TypeBool ColumnType = "bool"
)

var typeAliases = map[string]ColumnType{
	"int":     TypeInt,
	"integer": TypeInt,
	"str":     TypeStr,
	"string":  TypeStr,
	"bool":    TypeBool,
	"boolean": TypeBool,
}

// ParseColumnType resolves a user-supplied type name, accepting the long
// aliases and normalizing them to the canonical short form.
func ParseColumnType(name string) (ColumnType, error) {
	if t, ok := typeAliases[name]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q (allowed: int, str, bool)", ErrUnknownColumnType, name)
}

func (t *ColumnType) UnmarshalText(text []byte) error {
	parsed, err := ParseColumnType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Spec renders the column in the name:type form accepted by create_table.
func (c Column) Spec() string {
	return c.Name + ":" + string(c.Type)
}

type Table struct {
	Name    string
	Columns []Column
}

// Column returns the named column definition.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// DataColumns returns every column except ID, in schema order.
func (t Table) DataColumns() []Column {
	cols := make([]Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Name != IDColumn {
			cols = append(cols, c)
		}
	}
	return cols
}

func (t Table) Specs() []string {
	specs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		specs[i] = c.Spec()
	}
	return specs
}

func (t Table) String() string {
	return strings.Join(t.Specs(), ", ")
}
