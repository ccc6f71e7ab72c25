package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/primitivedb/catalog"
	"github.com/ridoystarlord/primitivedb/diff"
	"github.com/ridoystarlord/primitivedb/loader"
	"github.com/ridoystarlord/primitivedb/schema"
	"github.com/ridoystarlord/primitivedb/storage"
	"github.com/ridoystarlord/primitivedb/validator"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the tables declared in a YAML schema file",
	Long: `Create every table declared in a YAML schema file.

Tables that already exist are reported and left untouched; columns that
differ from the declaration are listed as warnings.

Examples:
  primitive-db bootstrap
  primitive-db bootstrap --file tables.yaml
  primitive-db bootstrap --dry-run`,
	Run: func(cmd *cobra.Command, args []string) {
		defs, err := loader.LoadTablesFromYAML(bootstrapFile)
		if err != nil {
			fmt.Printf("❌ Failed to load schema: %v\n", err)
			os.Exit(1)
		}
		store, err := openStore(loadConfig())
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		if _, err := createTables(os.Stdout, store, defs, bootstrapDryRun); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
	},
}

var (
	bootstrapFile   string
	bootstrapDryRun bool
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

func init() {
	bootstrapCmd.Flags().StringVarP(&bootstrapFile, "file", "f", "schema.yaml", "Schema file to read")
	bootstrapCmd.Flags().BoolVar(&bootstrapDryRun, "dry-run", false, "Show the tables that would be created without creating them")
}

// createTables creates each declared table that is not cataloged yet. Tables
// that already exist are skipped and any column drift is reported, never
// applied. A table whose name or columns are invalid is reported and skipped.
// A storage failure stops the run; tables created before it are kept.
func createTables(out io.Writer, store *storage.Store, defs []loader.TableDef, dryRun bool) (int, error) {
	tables := catalog.NewManager(store)
	cat, err := tables.Load()
	if err != nil {
		return 0, fmt.Errorf("loading catalog: %w", err)
	}

	declared := make([]schema.Table, 0, len(defs))
	skipped := 0
	for _, def := range defs {
		cols, err := declaredColumns(def)
		if err != nil {
			warnColor.Fprintf(out, "⚠️  Skipping table %q: %v\n", def.Name, err)
			skipped++
			continue
		}
		declared = append(declared, schema.Table{Name: def.Name, Columns: cols})
		if cat.Has(def.Name) {
			warnColor.Fprintf(out, "⚠️  Table %q already exists, skipping\n", def.Name)
		}
	}

	created := 0
	for _, op := range diff.DiffTables(declared, cat) {
		if op.Type != diff.CreateTable {
			warnColor.Fprintf(out, "⚠️  %s\n", op)
			continue
		}
		if dryRun {
			fmt.Fprintf(out, "📝 Would %s\n", op)
			continue
		}

		next, table, err := tables.CreateTable(cat, op.TableName, op.Specs())
		if errors.Is(err, schema.ErrDuplicateTable) {
			warnColor.Fprintf(out, "⚠️  Table %q is declared more than once, skipping\n", op.TableName)
			continue
		}
		if err != nil {
			return created, fmt.Errorf("table %q: %w", op.TableName, err)
		}
		cat = next
		created++
		successColor.Fprintf(out, "✅ Created table %q (%s)\n", table.Name, table)
	}

	fmt.Fprintf(out, "📊 %d table(s) created, %d skipped, %d total\n", created, skipped, cat.Len())
	return created, nil
}

func declaredColumns(def loader.TableDef) ([]schema.Column, error) {
	if err := validator.ValidateTableName(def.Name); err != nil {
		return nil, err
	}
	return catalog.ParseColumnSpecs(def.Specs)
}
