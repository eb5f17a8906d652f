package export

import (
	"casetrace-backend/internal/skiptrace"
	"fmt"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Summary counts what a batch found.
type Summary struct {
	Addresses  int
	Records    int
	WithPhones int
	WithEmail  int
	Absentee   int
	Vacant     int
	Failures   map[skiptrace.FailureKind]int
}

func Summarize(result skiptrace.BatchResult) Summary {
	summary := Summary{
		Addresses: len(result.Records) + len(result.Failures),
		Records:   len(result.Records),
		Failures:  map[skiptrace.FailureKind]int{},
	}
	for _, entry := range result.Records {
		if len(entry.Record.Phones()) > 0 {
			summary.WithPhones++
		}
		if entry.Record[skiptrace.COL_EMAIL] != "" {
			summary.WithEmail++
		}
		if entry.Record.Flag(skiptrace.COL_ABSENTEE_OWNER) {
			summary.Absentee++
		}
		if entry.Record.Flag(skiptrace.COL_VACANT) {
			summary.Vacant++
		}
	}
	for _, failure := range result.Failures {
		summary.Failures[failure.Kind]++
	}
	return summary
}

func percent(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}

func PrintSummary(w io.Writer, summary Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Metric", "Count", "Share"})

	t.AppendRow(table.Row{"Addresses", summary.Addresses, ""})
	t.AppendRow(table.Row{"Records", summary.Records, percent(summary.Records, summary.Addresses)})
	t.AppendRow(table.Row{"With phones", summary.WithPhones, percent(summary.WithPhones, summary.Records)})
	t.AppendRow(table.Row{"With email", summary.WithEmail, percent(summary.WithEmail, summary.Records)})
	t.AppendRow(table.Row{"Absentee owner", summary.Absentee, percent(summary.Absentee, summary.Records)})
	t.AppendRow(table.Row{"Vacant", summary.Vacant, percent(summary.Vacant, summary.Records)})

	kinds := make([]skiptrace.FailureKind, 0, len(summary.Failures))
	for kind := range summary.Failures {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	if len(kinds) > 0 {
		t.AppendSeparator()
	}
	for _, kind := range kinds {
		t.AppendRow(table.Row{
			fmt.Sprintf("Failed (%s)", kind),
			summary.Failures[kind],
			percent(summary.Failures[kind], summary.Addresses),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
