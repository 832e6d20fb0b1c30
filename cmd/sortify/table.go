package main

import (
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"sortify/internal/sorter"
)

// renderRunSummary builds the final per-bucket table for a finished pass.
// Returns an empty string when nothing was moved or planned.
func renderRunSummary(s *sorter.Summary) string {
	counts := make(map[string]int)
	for _, r := range s.Results {
		if r.Disposition == sorter.DispositionMoved || r.Disposition == sorter.DispositionPlanned {
			counts[r.Bucket]++
		}
	}
	if len(counts) == 0 {
		return ""
	}

	buckets := make([]string, 0, len(counts))
	for bucket := range counts {
		buckets = append(buckets, bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if counts[buckets[i]] != counts[buckets[j]] {
			return counts[buckets[i]] > counts[buckets[j]]
		}
		return buckets[i] < buckets[j]
	})

	header := "Moved"
	if s.DryRun {
		header = "Planned"
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Extension", header})
	total := 0
	for _, bucket := range buckets {
		tw.AppendRow(table.Row{bucket, strconv.Itoa(counts[bucket])})
		total += counts[bucket]
	}
	tw.AppendFooter(table.Row{"total", strconv.Itoa(total)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}
