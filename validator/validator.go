package validator

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/primitivedb/schema"
)

const maxIdentifierLength = 63

// Words the command grammar uses positionally; a table or column with one of
// these names would make commands ambiguous.
var reservedKeywords = []string{"into", "values", "from", "where", "set"}

// ValidationError describes one problem found in a persisted database
type ValidationError struct {
	Type     string `json:"type"`
	Table    string `json:"table,omitempty"`
	Column   string `json:"column,omitempty"`
	Record   int64  `json:"record,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning"
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Tables   int               `json:"tables"`
	Records  int               `json:"records"`
}

func NewResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
}

// ValidateTableName checks that a table name can be used as a file name and
// parsed unambiguously by the command grammar.
func ValidateTableName(name string) error {
	if err := validateIdentifier("table", name); err != nil {
		return fmt.Errorf("%w: %v", schema.ErrInvalidIdentifier, err)
	}
	return nil
}

// ValidateColumnName applies the same rules as ValidateTableName to a column.
func ValidateColumnName(name string) error {
	if err := validateIdentifier("column", name); err != nil {
		return fmt.Errorf("%w: %v", schema.ErrMalformedColumnSpec, err)
	}
	return nil
}

func validateIdentifier(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}

	if len(name) > maxIdentifierLength {
		return fmt.Errorf("%s name '%s' is too long (max %d characters)", kind, name, maxIdentifierLength)
	}

	for _, char := range name {
		if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '_') {
			return fmt.Errorf("%s name '%s' contains invalid character '%c'", kind, name, char)
		}
	}

	for _, keyword := range reservedKeywords {
		if strings.ToLower(name) == keyword {
			return fmt.Errorf("%s name '%s' is a reserved keyword", kind, name)
		}
	}

	return nil
}

// CheckTable validates a cataloged table definition.
func (r *ValidationResult) CheckTable(table schema.Table) {
	r.Tables++
	if err := validateIdentifier("table", table.Name); err != nil {
		r.addError("table_name", table.Name, "", 0, err.Error())
	}

	id, ok := table.Column(schema.IDColumn)
	if !ok {
		r.addError("missing_id", table.Name, schema.IDColumn, 0, "table has no ID column")
	} else if id.Type != schema.TypeInt {
		r.addError("id_type", table.Name, schema.IDColumn, 0, fmt.Sprintf("ID column has type %s, expected int", id.Type))
	}

	seen := map[string]bool{}
	for _, col := range table.Columns {
		if seen[col.Name] {
			r.addError("duplicate_column", table.Name, col.Name, 0, "column is declared more than once")
		}
		seen[col.Name] = true
		if err := validateIdentifier("column", col.Name); err != nil {
			r.addWarning("column_name", table.Name, col.Name, 0, err.Error())
		}
	}
}

// CheckRecords validates a table's stored records against its schema.
func (r *ValidationResult) CheckRecords(table schema.Table, records []schema.Record) {
	r.Records += len(records)
	ids := map[int64]bool{}

	for _, rec := range records {
		id, hasID := rec.Get(schema.IDColumn)
		n, isInt := id.Int()
		switch {
		case !hasID:
			r.addError("missing_id", table.Name, schema.IDColumn, 0, "record has no ID field")
		case !isInt || n < 0:
			r.addError("id_type", table.Name, schema.IDColumn, 0, fmt.Sprintf("record ID %s is not a non-negative int", id))
		case ids[n]:
			r.addError("duplicate_id", table.Name, schema.IDColumn, n, "ID is used by more than one record")
		default:
			ids[n] = true
		}

		for _, f := range rec.Fields {
			col, ok := table.Column(f.Name)
			if !ok {
				r.addError("unknown_field", table.Name, f.Name, n, "field is not in the table schema")
				continue
			}
			if f.Value.Kind() != col.Type {
				r.addWarning("field_type", table.Name, f.Name, n, fmt.Sprintf("stored %s value for %s column", f.Value.Kind(), col.Type))
			}
		}
		for _, col := range table.Columns {
			if _, ok := rec.Get(col.Name); !ok {
				r.addError("missing_field", table.Name, col.Name, n, "record is missing a schema column")
			}
		}
	}
}

// AddDocumentError records a document that could not be loaded at all.
func (r *ValidationResult) AddDocumentError(table string, err error) {
	r.addError("document", table, "", 0, err.Error())
}

// AddOrphanFile records a record file with no table in the catalog.
func (r *ValidationResult) AddOrphanFile(path string) {
	r.addWarning("orphan_file", "", "", 0, fmt.Sprintf("%s does not belong to any table", path))
}

func (r *ValidationResult) addError(kind, table, column string, record int64, message string) {
	r.Errors = append(r.Errors, ValidationError{
		Type:     kind,
		Table:    table,
		Column:   column,
		Record:   record,
		Message:  message,
		Severity: "error",
	})
	r.Valid = false
}

func (r *ValidationResult) addWarning(kind, table, column string, record int64, message string) {
	r.Warnings = append(r.Warnings, ValidationError{
		Type:     kind,
		Table:    table,
		Column:   column,
		Record:   record,
		Message:  message,
		Severity: "warning",
	})
}
