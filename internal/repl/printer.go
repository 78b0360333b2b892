package repl

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/domain/table"
	"github.com/leengari/tabledb/internal/search"
)

func printHeader(tw *tabwriter.Writer, sc schema.Schema) {
	fmt.Fprintf(tw, "#")
	for _, col := range sc.Columns {
		fmt.Fprintf(tw, "\t%s (%s)", col.Name, col.Kind)
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "---")
	for range sc.Columns {
		fmt.Fprintf(tw, "\t---")
	}
	fmt.Fprintln(tw)
}

func printRecord(tw *tabwriter.Writer, pos int, rec *table.Record) {
	fmt.Fprintf(tw, "%d", pos)
	for _, c := range rec.Cells() {
		fmt.Fprintf(tw, "\t%s", c)
	}
	fmt.Fprintln(tw)
}

// PrintTable writes every row of t with its position
func PrintTable(w io.Writer, t *table.Table) {
	if t.Len() == 0 {
		fmt.Fprintln(w, "Table is empty.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	printHeader(tw, t.Schema())
	t.Each(func(pos int, rec *table.Record) bool {
		printRecord(tw, pos, rec)
		return true
	})
	tw.Flush()
	fmt.Fprintf(w, "(%d rows)\n", t.Len())
}

// PrintResults writes up to limit matches and a trailer for the rest
func PrintResults(w io.Writer, sc schema.Schema, rs *search.ResultSet, limit int) {
	if rs.Empty() {
		fmt.Fprintln(w, "No matching records.")
		return
	}

	fmt.Fprintf(w, "Found %d record(s):\n", rs.Len())
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	printHeader(tw, sc)
	for i, e := range rs.Entries() {
		if limit > 0 && i >= limit {
			break
		}
		printRecord(tw, e.Position, e.Record)
	}
	tw.Flush()

	if limit > 0 && rs.Len() > limit {
		fmt.Fprintf(w, "  ... and %d more.\n", rs.Len()-limit)
	}
}
