package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/primitivedb/schema"
)

type yamlFile struct {
	Tables []yamlTable `yaml:"tables"`
}

type yamlTable struct {
	Name    string       `yaml:"name"`
	Columns []yamlColumn `yaml:"columns"`
}

type yamlColumn struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// TableDef is a table as declared in a schema file: a name plus column specs
// in name:type form, ready for catalog.Manager.CreateTable.
type TableDef struct {
	Name  string
	Specs []string
}

func LoadTablesFromYAML(filename string) ([]TableDef, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return ParseTablesYAML(data)
}

// ParseTablesYAML decodes a schema document. Column types are checked here so
// that a typo is reported against the file rather than at table creation.
func ParseTablesYAML(data []byte) ([]TableDef, error) {
	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	defs := make([]TableDef, 0, len(yf.Tables))
	for i, t := range yf.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("table #%d has no name", i+1)
		}
		def := TableDef{Name: t.Name}
		for _, c := range t.Columns {
			if c.Name == "" {
				return nil, fmt.Errorf("table %q: column has no name", t.Name)
			}
			typ, err := schema.ParseColumnType(c.Type)
			if err != nil {
				return nil, fmt.Errorf("table %q, column %q: %w", t.Name, c.Name, err)
			}
			def.Specs = append(def.Specs, schema.Column{Name: c.Name, Type: typ}.Spec())
		}
		if len(def.Specs) == 0 {
			return nil, fmt.Errorf("table %q has no columns", t.Name)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// ExampleSchema is written by the init command.
const ExampleSchema = `# Tables to create with 'primitive-db bootstrap'.
# Column types: int, str, bool. An ID:int column is added when none is declared.
tables:
  - name: users
    columns:
      - name: name
        type: str
      - name: age
        type: int
      - name: is_active
        type: bool

  - name: posts
    columns:
      - name: title
        type: str
      - name: author_id
        type: int
      - name: published
        type: bool
`
