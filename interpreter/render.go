package interpreter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ridoystarlord/primitivedb/schema"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	headerColor  = color.New(color.FgCyan, color.Bold)
)

// Render writes a human-readable form of res to w.
func Render(w io.Writer, res Result) {
	switch res.Kind {
	case ResultEmpty:
	case ResultOK:
		successColor.Fprintf(w, "✅ %s\n", res.Message)
	case ResultCancelled:
		warnColor.Fprintf(w, "⚠️  %s\n", res.Message)
	case ResultError:
		errorColor.Fprintf(w, "❌ Error: %s\n", res.Message)
	case ResultList:
		if len(res.Names) == 0 {
			fmt.Fprintln(w, res.Message)
			return
		}
		for _, name := range res.Names {
			fmt.Fprintf(w, "- %s\n", name)
		}
	case ResultRecords:
		renderRecords(w, res.Table, res.Records)
	case ResultInfo:
		headerColor.Fprintf(w, "Table: %s\n", res.Table.Name)
		fmt.Fprintf(w, "Columns: %s\n", res.Table)
		fmt.Fprintf(w, "Records: %d\n", res.Count)
	case ResultHelp, ResultQuit:
		fmt.Fprintln(w, res.Message)
	}
}

func renderRecords(w io.Writer, table schema.Table, records []schema.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	headers := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		headers[i] = c.Name
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, rec := range records {
		cells := make([]string, len(headers))
		for i, h := range headers {
			if v, ok := rec.Get(h); ok {
				cells[i] = v.String()
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
	fmt.Fprintf(w, "(%d record(s))\n", len(records))
}
