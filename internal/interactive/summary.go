package interactive

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"sortify/internal/sorter"
)

// ExtensionCount pairs a bucket name with how many candidates map to it.
type ExtensionCount struct {
	Extension string
	Count     int
}

// SummarizeExtensions groups candidate paths by extension bucket, ordered by
// descending count and then name for deterministic preview output.
func SummarizeExtensions(files []string) []ExtensionCount {
	counts := make(map[string]int)
	for _, path := range files {
		counts[sorter.ExtensionKey(filepath.Base(path))]++
	}

	out := make([]ExtensionCount, 0, len(counts))
	for ext, count := range counts {
		out = append(out, ExtensionCount{Extension: ext, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Extension < out[j].Extension
	})
	return out
}

// RenderSummaryTable renders the per-extension preview with share-of-total
// percentages.
func RenderSummaryTable(counts []ExtensionCount, total int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Extension", "Count", "%"})

	for _, entry := range counts {
		pct := 0.0
		if total > 0 {
			pct = float64(entry.Count) / float64(total) * 100
		}
		tw.AppendRow(table.Row{entry.Extension, entry.Count, fmt.Sprintf("%.1f%%", pct)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
