package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"dicom-deid/internal/audit"
)

// maxTableRows caps the rendered change table; the full list is always in
// the manifest.
const maxTableRows = 40

// printChanges renders the change-audit trail as a table.
func printChanges(changes []audit.Change) {
	if len(changes) == 0 {
		fmt.Println("No tag changes recorded")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Change audit")
	t.AppendHeader(table.Row{"File", "Tag", "Name", "Original", "New"})

	rows := changes
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
	}
	for _, c := range rows {
		t.AppendRow(table.Row{c.FileName, c.Tag, c.TagName, truncate(c.OriginalValue, 32), truncate(c.NewValue, 32)})
	}
	t.Render()

	if len(changes) > maxTableRows {
		fmt.Printf("... and %d more (see manifest)\n", len(changes)-maxTableRows)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
