package engine

import (
	"fmt"

	"github.com/ridoystarlord/primitivedb/cache"
	"github.com/ridoystarlord/primitivedb/schema"
	"github.com/ridoystarlord/primitivedb/storage"
)

// Condition is a single column=value equality. Values compare by their
// textual form, so "28" matches the int 28 and "true" matches a true bool.
type Condition struct {
	Column string
	Value  string
}

func (c *Condition) String() string {
	if c == nil {
		return ""
	}
	return c.Column + "=" + c.Value
}

func (c *Condition) matches(rec schema.Record) bool {
	v, ok := rec.Get(c.Column)
	return ok && v.String() == c.Value
}

type selectKey struct {
	Table  string
	Filter string
}

func (k selectKey) String() string {
	if k.Filter == "" {
		return k.Table
	}
	return k.Table + " where " + k.Filter
}

type TableInfo struct {
	Table       schema.Table
	RecordCount int
}

// Engine runs record operations against the store. Selects read through a
// cache that mutations never refresh, so a select repeated after an insert,
// update or delete in the same process may return the earlier result.
type Engine struct {
	store *storage.Store
	cache *cache.Cache[selectKey, []schema.Record]
}

func New(store *storage.Store) *Engine {
	return &Engine{
		store: store,
		cache: cache.New[selectKey, []schema.Record](),
	}
}

// CacheStats reports select cache hits and misses for diagnostics.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

func lookupTable(cat schema.Catalog, name string) (schema.Table, error) {
	table, ok := cat.Table(name)
	if !ok {
		return schema.Table{}, fmt.Errorf("%w: %q", schema.ErrUnknownTable, name)
	}
	return table, nil
}

func lookupColumn(table schema.Table, name string) (schema.Column, error) {
	col, ok := table.Column(name)
	if !ok {
		return schema.Column{}, fmt.Errorf("%w: %q in table %q", schema.ErrUnknownColumn, name, table.Name)
	}
	return col, nil
}

// Insert appends a record built from values, one per non-ID column in schema
// order. The new ID is one more than the largest stored ID.
func (e *Engine) Insert(cat schema.Catalog, tableName string, values []string) (schema.Record, error) {
	table, err := lookupTable(cat, tableName)
	if err != nil {
		return schema.Record{}, err
	}
	dataCols := table.DataColumns()
	if len(values) != len(dataCols) {
		return schema.Record{}, fmt.Errorf("%w: table %q expects %d values, got %d",
			schema.ErrArityMismatch, tableName, len(dataCols), len(values))
	}

	records, err := e.store.LoadRecords(tableName)
	if err != nil {
		return schema.Record{}, err
	}

	var maxID int64
	for _, rec := range records {
		if id := rec.ID(); id > maxID {
			maxID = id
		}
	}

	fields := make([]schema.Field, 0, len(table.Columns))
	next := 0
	for _, col := range table.Columns {
		if col.Name == schema.IDColumn {
			fields = append(fields, schema.Field{Name: col.Name, Value: schema.IntValue(maxID + 1)})
			continue
		}
		v, err := schema.Coerce(col.Type, values[next])
		if err != nil {
			return schema.Record{}, fmt.Errorf("column %q: %w", col.Name, err)
		}
		fields = append(fields, schema.Field{Name: col.Name, Value: v})
		next++
	}

	rec := schema.NewRecord(fields...)
	if err := e.store.SaveRecords(tableName, append(records, rec)); err != nil {
		return schema.Record{}, err
	}
	return rec, nil
}

// Select returns the table's records, optionally narrowed by where, in stored
// order. Results are cached per table and filter text.
func (e *Engine) Select(cat schema.Catalog, tableName string, where *Condition) ([]schema.Record, error) {
	table, err := lookupTable(cat, tableName)
	if err != nil {
		return nil, err
	}
	if where != nil {
		if _, err := lookupColumn(table, where.Column); err != nil {
			return nil, err
		}
	}

	key := selectKey{Table: tableName, Filter: where.String()}
	records, _, err := e.cache.GetOrLoad(key, func() ([]schema.Record, error) {
		all, err := e.store.LoadRecords(tableName)
		if err != nil {
			return nil, err
		}
		if where == nil {
			return all, nil
		}
		matched := []schema.Record{}
		for _, rec := range all {
			if where.matches(rec) {
				matched = append(matched, rec)
			}
		}
		return matched, nil
	})
	return records, err
}

// Update sets one column on every record matching where and returns how many
// records changed. Nothing is written when no record matches.
func (e *Engine) Update(cat schema.Catalog, tableName string, set, where Condition) (int, error) {
	table, err := lookupTable(cat, tableName)
	if err != nil {
		return 0, err
	}
	if set.Column == schema.IDColumn {
		return 0, fmt.Errorf("%w: %s is assigned automatically", schema.ErrReadOnlyColumn, schema.IDColumn)
	}
	setCol, err := lookupColumn(table, set.Column)
	if err != nil {
		return 0, err
	}
	if _, err := lookupColumn(table, where.Column); err != nil {
		return 0, err
	}
	v, err := schema.Coerce(setCol.Type, set.Value)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", setCol.Name, err)
	}

	records, err := e.store.LoadRecords(tableName)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, rec := range records {
		if where.matches(rec) {
			rec.Set(setCol.Name, v)
			updated++
		}
	}
	if updated == 0 {
		return 0, nil
	}
	if err := e.store.SaveRecords(tableName, records); err != nil {
		return 0, err
	}
	return updated, nil
}

// Delete removes every record matching where and returns how many were removed.
func (e *Engine) Delete(cat schema.Catalog, tableName string, where Condition) (int, error) {
	table, err := lookupTable(cat, tableName)
	if err != nil {
		return 0, err
	}
	if _, err := lookupColumn(table, where.Column); err != nil {
		return 0, err
	}

	records, err := e.store.LoadRecords(tableName)
	if err != nil {
		return 0, err
	}

	kept := make([]schema.Record, 0, len(records))
	for _, rec := range records {
		if !where.matches(rec) {
			kept = append(kept, rec)
		}
	}
	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := e.store.SaveRecords(tableName, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// Info reports a table's schema and its current record count, read from disk.
func (e *Engine) Info(cat schema.Catalog, tableName string) (TableInfo, error) {
	table, err := lookupTable(cat, tableName)
	if err != nil {
		return TableInfo{}, err
	}
	records, err := e.store.LoadRecords(tableName)
	if err != nil {
		return TableInfo{}, err
	}
	return TableInfo{Table: table, RecordCount: len(records)}, nil
}
