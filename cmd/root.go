package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/primitivedb/utils"
)

var rootCmd = &cobra.Command{
	Use:   "primitive-db",
	Short: "A tiny file-backed record store with an interactive prompt",
	Long: `primitive-db keeps tables of typed records in JSON files and lets you
manage them from an interactive prompt or one command at a time.

Examples:

  primitive-db                                   # start the interactive prompt
  primitive-db exec "list_tables"
  primitive-db exec "drop_table users" --yes
  primitive-db init && primitive-db bootstrap
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := utils.LoadEnv(); err != nil {
			fmt.Println("⚠️ ", err)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runREPL(os.Stdin, os.Stdout, loadConfig()); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
	},
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

func loadConfig() utils.Config {
	return utils.LoadConfig(viper.GetViper())
}

// Register subcommands
func init() {
	rootCmd.PersistentFlags().String("root", ".", "Directory holding the catalog and data directory")
	rootCmd.PersistentFlags().String("catalog", "", "Catalog file name, relative to --root (default db_meta.json)")
	rootCmd.PersistentFlags().String("data-dir", "", "Record directory, relative to --root (default data)")
	viper.BindPFlag(utils.KeyRoot, rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag(utils.KeyCatalog, rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag(utils.KeyDataDir, rootCmd.PersistentFlags().Lookup("data-dir"))

	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(importPGCmd)
	rootCmd.AddCommand(checkCmd)
}
