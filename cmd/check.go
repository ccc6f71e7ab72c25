package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/primitivedb/storage"
	"github.com/ridoystarlord/primitivedb/validator"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the catalog and record files for consistency",
	Long: `Load the catalog and every record file and report problems.

This command will:
- Report documents that cannot be parsed
- Check each table has an int ID column and no duplicate columns
- Check records for missing, duplicate or non-int IDs
- Check record fields against the table's columns
- Warn about record files that belong to no table

Examples:
  primitive-db check                   # Human-readable report
  primitive-db check --format json     # Output results as JSON
`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore(loadConfig())
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		result, err := checkStore(store)
		if err != nil {
			fmt.Printf("❌ Check failed: %v\n", err)
			os.Exit(1)
		}

		if checkFormat == "json" {
			err = outputJSON(os.Stdout, result)
		} else {
			outputText(os.Stdout, result)
		}
		if err != nil || !result.Valid {
			os.Exit(1)
		}
	},
}

var checkFormat string

func init() {
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text, json)")
}

func checkStore(store *storage.Store) (*validator.ValidationResult, error) {
	result := validator.NewResult()

	cat, err := store.LoadCatalog()
	if err != nil {
		result.AddDocumentError("", err)
		return result, nil
	}

	for _, table := range cat.Tables() {
		result.CheckTable(table)
		records, err := store.LoadRecords(table.Name)
		if err != nil {
			result.AddDocumentError(table.Name, err)
			continue
		}
		result.CheckRecords(table, records)
	}

	files, err := store.RecordFiles()
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		if !cat.Has(name) {
			result.AddOrphanFile(store.RecordsPath(name))
		}
	}
	return result, nil
}

func outputJSON(w io.Writer, result *validator.ValidationResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(w io.Writer, result *validator.ValidationResult) {
	if result.Valid {
		color.New(color.FgGreen).Fprintln(w, "✅ Check passed!")
	} else {
		color.New(color.FgRed).Fprintln(w, "❌ Check failed!")
	}

	printIssues(w, "🔴 Errors", result.Errors)
	printIssues(w, "🟡 Warnings", result.Warnings)

	fmt.Fprintf(w, "\n📊 Summary:\n")
	fmt.Fprintf(w, "  • Tables: %d\n", result.Tables)
	fmt.Fprintf(w, "  • Records: %d\n", result.Records)
	fmt.Fprintf(w, "  • Errors: %d\n", len(result.Errors))
	fmt.Fprintf(w, "  • Warnings: %d\n", len(result.Warnings))
}

func printIssues(w io.Writer, title string, issues []validator.ValidationError) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", title, len(issues))
	for i, issue := range issues {
		fmt.Fprintf(w, "  %d. ", i+1)
		if issue.Table != "" {
			fmt.Fprintf(w, "[%s]", issue.Table)
		}
		if issue.Column != "" {
			fmt.Fprintf(w, ".%s", issue.Column)
		}
		if issue.Record != 0 {
			fmt.Fprintf(w, " (ID %d)", issue.Record)
		}
		fmt.Fprintf(w, ": %s\n", issue.Message)
	}
}
