package schema

import (
	"bytes"
	"encoding/json"
)

// Catalog maps table names to their schemas in creation order. It is a value:
// With and Without return modified copies and never touch the receiver.
type Catalog struct {
	tables []Table
}

func NewCatalog(tables ...Table) Catalog {
	c := Catalog{}
	for _, t := range tables {
		c = c.With(t)
	}
	return c
}

func (c Catalog) Table(name string) (Table, bool) {
	for _, t := range c.tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

func (c Catalog) Has(name string) bool {
	_, ok := c.Table(name)
	return ok
}

func (c Catalog) Tables() []Table {
	return append([]Table(nil), c.tables...)
}

func (c Catalog) Names() []string {
	names := make([]string, len(c.tables))
	for i, t := range c.tables {
		names[i] = t.Name
	}
	return names
}

func (c Catalog) Len() int { return len(c.tables) }

// With returns a catalog that also contains t, replacing any table of the same name.
func (c Catalog) With(t Table) Catalog {
	t.Columns = append([]Column(nil), t.Columns...)
	tables := make([]Table, 0, len(c.tables)+1)
	replaced := false
	for _, existing := range c.tables {
		if existing.Name == t.Name {
			tables = append(tables, t)
			replaced = true
			continue
		}
		tables = append(tables, existing)
	}
	if !replaced {
		tables = append(tables, t)
	}
	return Catalog{tables: tables}
}

func (c Catalog) Without(name string) Catalog {
	tables := make([]Table, 0, len(c.tables))
	for _, t := range c.tables {
		if t.Name != name {
			tables = append(tables, t)
		}
	}
	return Catalog{tables: tables}
}

// MarshalJSON writes {"tables": {"name": [columns...]}} keeping table order.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"tables":{`)
	for i, t := range c.tables {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, t.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		cols := t.Columns
		if cols == nil {
			cols = []Column{}
		}
		if err := writeJSON(&buf, cols); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	var tables []Table
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return err
		}
		if key != "tables" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
			continue
		}
		if tables, err = decodeTables(dec); err != nil {
			return err
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return err
	}
	c.tables = tables
	return nil
}

func decodeTables(dec *json.Decoder) ([]Table, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var tables []Table
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		var cols []Column
		if err := dec.Decode(&cols); err != nil {
			return nil, err
		}
		tables = append(tables, Table{Name: name, Columns: cols})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return tables, nil
}
