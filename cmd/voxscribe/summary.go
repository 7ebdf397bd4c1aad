package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"

	"voxscribe/internal/pipeline"
)

var titleCaser = cases.Title(xlang.English)

// stageLabel turns an internal stage name into a display heading.
func stageLabel(stage string) string {
	if stage == "" {
		return "-"
	}
	return titleCaser.String(strings.ReplaceAll(stage, "_", " "))
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(100 * time.Millisecond).String()
}

// renderItemSummary shows the outcome of a single-file run.
func renderItemSummary(item *pipeline.Item) string {
	if item == nil {
		return ""
	}
	rows := [][]string{
		{"File", filepath.Base(item.SourcePath)},
		{"Status", string(item.Status)},
		{"Speakers", strconv.Itoa(item.DiarizeStats.Speakers)},
		{"Segments", strconv.Itoa(item.DiarizeStats.Segments)},
		{"Lines", strconv.Itoa(item.TranscribeStats.Lines)},
		{"Error segments", strconv.Itoa(item.TranscribeStats.ErrorSegments)},
		{"Consolidated lines", strconv.Itoa(item.CleanStats.LinesOut)},
		{"Resumed", yesNo(item.ResumedFromSidecar)},
		{"Elapsed", formatDuration(item.Elapsed())},
	}
	if item.Status == pipeline.StatusFailed {
		rows = append(rows,
			[]string{"Failed stage", stageLabel(item.FailedStage)},
			[]string{"Error", item.ErrorMessage},
		)
	}
	return renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})
}

// renderBatchSummary shows the per-file outcomes and totals of a batch run.
func renderBatchSummary(result pipeline.BatchResult) string {
	rows := make([][]string, 0, len(result.Items))
	for _, item := range result.Items {
		detail := ""
		if item.Status == pipeline.StatusFailed {
			detail = fmt.Sprintf("%s: %s", stageLabel(item.FailedStage), item.ErrorMessage)
		}
		rows = append(rows, []string{
			filepath.Base(item.SourcePath),
			string(item.Status),
			strconv.Itoa(item.TranscribeStats.Lines),
			strconv.Itoa(item.CleanStats.LinesOut),
			formatDuration(item.Elapsed()),
			detail,
		})
	}

	var b strings.Builder
	b.WriteString(renderTable(
		[]string{"File", "Status", "Lines", "Cleaned", "Elapsed", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total: %d  Succeeded: %d  Failed: %d", result.Total, result.Succeeded, result.Failed)
	if result.Total > 0 {
		fmt.Fprintf(&b, "  Success rate: %.0f%%", float64(result.Succeeded)/float64(result.Total)*100)
	}
	return b.String()
}
