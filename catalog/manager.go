package catalog

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ridoystarlord/primitivedb/schema"
	"github.com/ridoystarlord/primitivedb/storage"
	"github.com/ridoystarlord/primitivedb/validator"
)

// Manager creates and drops tables. Every operation takes the current catalog
// and returns the next one; the caller owns the single live value.
type Manager struct {
	store *storage.Store
}

func NewManager(store *storage.Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) Load() (schema.Catalog, error) {
	return m.store.LoadCatalog()
}

// LoadOrEmpty loads the catalog for startup. A corrupt catalog is logged and
// replaced by an empty one; other read failures are returned.
func (m *Manager) LoadOrEmpty() (schema.Catalog, error) {
	cat, err := m.store.LoadCatalog()
	if errors.Is(err, schema.ErrDeserialization) {
		log.Printf("⚠️  %v; starting with an empty catalog", err)
		return schema.Catalog{}, nil
	}
	return cat, err
}

// ParseColumnSpecs turns name:type specs into column definitions and puts an
// ID:int column in front when none of the specs names ID.
func ParseColumnSpecs(specs []string) ([]schema.Column, error) {
	cols := make([]schema.Column, 0, len(specs)+1)
	seen := map[string]bool{}
	hasID := false

	for _, spec := range specs {
		name, typeName, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q (expected name:type)", schema.ErrMalformedColumnSpec, spec)
		}
		if err := validator.ValidateColumnName(name); err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate column %q", schema.ErrMalformedColumnSpec, name)
		}
		typ, err := schema.ParseColumnType(typeName)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		if name == schema.IDColumn {
			if typ != schema.TypeInt {
				return nil, fmt.Errorf("%w: %s column must be int", schema.ErrMalformedColumnSpec, schema.IDColumn)
			}
			hasID = true
		}
		seen[name] = true
		cols = append(cols, schema.Column{Name: name, Type: typ})
	}

	if !hasID {
		cols = append([]schema.Column{{Name: schema.IDColumn, Type: schema.TypeInt}}, cols...)
	}
	return cols, nil
}

// CreateTable validates everything before touching storage. On error the
// input catalog is returned unchanged.
func (m *Manager) CreateTable(cat schema.Catalog, name string, specs []string) (schema.Catalog, schema.Table, error) {
	if err := validator.ValidateTableName(name); err != nil {
		return cat, schema.Table{}, err
	}
	if cat.Has(name) {
		return cat, schema.Table{}, fmt.Errorf("%w: %q", schema.ErrDuplicateTable, name)
	}
	cols, err := ParseColumnSpecs(specs)
	if err != nil {
		return cat, schema.Table{}, err
	}

	table := schema.Table{Name: name, Columns: cols}
	next := cat.With(table)

	if err := m.store.SaveRecords(name, nil); err != nil {
		return cat, schema.Table{}, fmt.Errorf("creating record file for %q: %w", name, err)
	}
	if err := m.store.SaveCatalog(next); err != nil {
		m.store.RemoveRecords(name)
		return cat, schema.Table{}, fmt.Errorf("saving catalog: %w", err)
	}
	return next, table, nil
}

// DropTable removes the table from the catalog and deletes its record file.
func (m *Manager) DropTable(cat schema.Catalog, name string) (schema.Catalog, error) {
	if !cat.Has(name) {
		return cat, fmt.Errorf("%w: %q", schema.ErrUnknownTable, name)
	}

	next := cat.Without(name)
	if err := m.store.SaveCatalog(next); err != nil {
		return cat, fmt.Errorf("saving catalog: %w", err)
	}
	if err := m.store.RemoveRecords(name); err != nil {
		return next, err
	}
	return next, nil
}

// ListTables returns table names in creation order.
func ListTables(cat schema.Catalog) []string {
	return cat.Names()
}
