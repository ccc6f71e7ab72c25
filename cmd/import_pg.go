package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/primitivedb/database"
	"github.com/ridoystarlord/primitivedb/introspect"
	"github.com/ridoystarlord/primitivedb/loader"
)

var importPGCmd = &cobra.Command{
	Use:   "import-pg",
	Short: "Create tables from a Postgres database schema",
	Long: `Read the tables of a Postgres database's public schema and create a table
with matching columns for each one. Rows are not copied.

Integer columns become int, boolean columns become bool and every other type
becomes str. An integer primary key named "id" becomes the ID column.

The connection string is read from DATABASE_URL (environment or .env).

Examples:
  primitive-db import-pg
  primitive-db import-pg --timeout 30s`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := importFromPostgres(); err != nil {
			fmt.Printf("❌ Import failed: %v\n", err)
			os.Exit(1)
		}
	},
}

var importTimeout time.Duration

func init() {
	importPGCmd.Flags().DurationVarP(&importTimeout, "timeout", "t", 10*time.Second, "Timeout for reading the database schema")
}

func importFromPostgres() error {
	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()

	cfg := loadConfig()
	url, err := cfg.RequireDatabaseURL()
	if err != nil {
		return err
	}
	pool, err := database.GetPool(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to get database pool: %v", err)
	}
	defer database.ClosePool()

	existing, err := introspect.IntrospectTables(ctx, pool)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		fmt.Println("ℹ️  No tables found in the public schema")
		return nil
	}

	defs := make([]loader.TableDef, 0, len(existing))
	for _, t := range existing {
		defs = append(defs, loader.TableDef{Name: t.TableName, Specs: t.ColumnSpecs()})
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	_, err = createTables(os.Stdout, store, defs, false)
	return err
}
