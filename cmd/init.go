package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/primitivedb/loader"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example schema.yaml",
	Long: `Write an example schema.yaml describing a couple of tables.

Edit the file, then run 'primitive-db bootstrap' to create the tables.

Examples:
  primitive-db init
  primitive-db init --file tables.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat(initFile); err == nil {
			fmt.Printf("❌ %s already exists!\n", initFile)
			os.Exit(1)
		}

		if err := os.WriteFile(initFile, []byte(loader.ExampleSchema), 0644); err != nil {
			fmt.Printf("❌ Error creating %s: %v\n", initFile, err)
			os.Exit(1)
		}
		fmt.Printf("✅ Created %s example file.\n", initFile)
		fmt.Printf("📝 Edit %s to define your tables\n", initFile)
		fmt.Println("🚀 Run 'primitive-db bootstrap' to create them")
	},
}

var initFile string

func init() {
	initCmd.Flags().StringVarP(&initFile, "file", "f", "schema.yaml", "Schema file to write")
}
